package mir

import (
	"fmt"

	"github.com/malphas-lang/malphas-lang/internal/diag"
)

// Validator checks a Function against the well-formedness invariants
// spec.md §3/§4.3 place on MIR: writable assign destinations, in-range
// block/local/drop-flag references (including the local an Index wrapper
// names), and SwitchValue arity. Wrapper types are not checked. It is re-run by internal/optimize after every pass
// (spec.md §6).
type Validator struct {
	fn Function
}

func NewValidator(fn Function) *Validator { return &Validator{fn: fn} }

// Validate runs every check and returns every violation found, rather than
// stopping at the first one, so a single run surfaces the whole picture.
func (v *Validator) Validate() []diag.Diagnostic {
	var out []diag.Diagnostic
	out = append(out, v.checkLocalsAndFlags()...)
	for bi, bb := range v.fn.Blocks {
		out = append(out, v.checkBlock(bi, bb)...)
	}
	if len(v.fn.Blocks) == 0 {
		out = append(out, v.bad(diag.CodeValidatorBadBlockRef, "function has no blocks; block 0 must be the entry block"))
	}
	if len(v.fn.Locals) == 0 {
		out = append(out, v.bad(diag.CodeValidatorBadLValue, "function has no locals; local 0 must be the return slot"))
	}
	return out
}

func (v *Validator) bad(code diag.Code, msg string) diag.Diagnostic {
	return diag.New(diag.StageValidator, diag.SeverityError, code, msg, diag.Span{})
}

func (v *Validator) badf(code diag.Code, format string, args ...interface{}) diag.Diagnostic {
	return v.bad(code, fmt.Sprintf(format, args...))
}

func (v *Validator) validBlock(idx int) bool { return idx >= 0 && idx < len(v.fn.Blocks) }
func (v *Validator) validLocal(idx int) bool { return idx >= 0 && idx < len(v.fn.Locals) }
func (v *Validator) validFlag(idx int) bool  { return idx >= 0 && idx < len(v.fn.DropFlags) }

func (v *Validator) checkLocalsAndFlags() []diag.Diagnostic {
	return nil
}

func (v *Validator) checkBlock(idx int, bb BasicBlock) []diag.Diagnostic {
	var out []diag.Diagnostic
	for si, s := range bb.Statements {
		out = append(out, v.checkStatement(idx, si, s)...)
	}
	out = append(out, v.checkTerminator(idx, bb.Terminator)...)
	return out
}

func (v *Validator) checkLValue(blockIdx, stmtIdx int, l LValue, context string) []diag.Diagnostic {
	var out []diag.Diagnostic
	switch l.Storage.Kind {
	case StorageArgument, StorageLocal:
		if !v.validLocal(l.Storage.Index) {
			out = append(out, v.badf(diag.CodeValidatorBadLValue,
				"block %d stmt %d: %s references out-of-range local %d", blockIdx, stmtIdx, context, l.Storage.Index))
		}
	}
	for _, w := range l.Wrappers {
		if w.Kind == WrapIndex && !v.validLocal(w.Index) {
			out = append(out, v.badf(diag.CodeValidatorBadWrapper,
				"block %d stmt %d: %s has an Index wrapper referencing out-of-range local %d", blockIdx, stmtIdx, context, w.Index))
		}
	}
	return out
}

func (v *Validator) checkStatement(blockIdx, stmtIdx int, s Statement) []diag.Diagnostic {
	var out []diag.Diagnostic
	switch s.Kind {
	case StmtAssign:
		if !s.AssignDst.IsWritable() {
			out = append(out, v.badf(diag.CodeValidatorBadLValue,
				"block %d stmt %d: assign destination is not writable (static writes are forbidden in MIR)", blockIdx, stmtIdx))
		}
		out = append(out, v.checkLValue(blockIdx, stmtIdx, s.AssignDst, "assign destination")...)
	case StmtSetDropFlag:
		if !v.validFlag(s.DropFlagIdx) {
			out = append(out, v.badf(diag.CodeValidatorBadDropFlag,
				"block %d stmt %d: SetDropFlag references out-of-range drop flag %d", blockIdx, stmtIdx, s.DropFlagIdx))
		}
		if s.DropFlagOther != nil && !v.validFlag(*s.DropFlagOther) {
			out = append(out, v.badf(diag.CodeValidatorBadDropFlag,
				"block %d stmt %d: SetDropFlag's linked flag %d is out of range", blockIdx, stmtIdx, *s.DropFlagOther))
		}
	case StmtSaveDropFlag, StmtLoadDropFlag:
		if !v.validFlag(s.SavedFlagIdx) {
			out = append(out, v.badf(diag.CodeValidatorBadDropFlag,
				"block %d stmt %d: references out-of-range drop flag %d", blockIdx, stmtIdx, s.SavedFlagIdx))
		}
	case StmtDrop:
		out = append(out, v.checkLValue(blockIdx, stmtIdx, s.DropSlot, "drop target")...)
		if s.DropFlagRef != nil && !v.validFlag(*s.DropFlagRef) {
			out = append(out, v.badf(diag.CodeValidatorBadDropFlag,
				"block %d stmt %d: conditional drop references out-of-range drop flag %d", blockIdx, stmtIdx, *s.DropFlagRef))
		}
	case StmtScopeEnd:
		for _, li := range s.ScopeLocals {
			if !v.validLocal(li) {
				out = append(out, v.badf(diag.CodeValidatorBadLValue,
					"block %d stmt %d: ScopeEnd references out-of-range local %d", blockIdx, stmtIdx, li))
			}
		}
	}
	return out
}

func (v *Validator) checkTerminator(blockIdx int, t Terminator) []diag.Diagnostic {
	var out []diag.Diagnostic
	checkTarget := func(bb int, label string) {
		if !v.validBlock(bb) {
			out = append(out, v.badf(diag.CodeValidatorBadBlockRef,
				"block %d: %s targets out-of-range block %d", blockIdx, label, bb))
		}
	}
	switch t.Kind {
	case TermIncomplete:
		out = append(out, v.badf(diag.CodeValidatorBadTerminator,
			"block %d: terminator is Incomplete", blockIdx))
	case TermGoto:
		checkTarget(t.GotoTarget, "Goto")
	case TermIf:
		checkTarget(t.IfThen, "If.then")
		checkTarget(t.IfElse, "If.else")
	case TermSwitch:
		for i, tgt := range t.SwitchTargets {
			checkTarget(tgt, fmt.Sprintf("Switch.targets[%d]", i))
		}
	case TermSwitchValue:
		if len(t.SwitchValueTargets) != len(t.SwitchValueValues) {
			out = append(out, v.badf(diag.CodeValidatorArityMismatch,
				"block %d: SwitchValue has %d targets but %d values", blockIdx, len(t.SwitchValueTargets), len(t.SwitchValueValues)))
		}
		for i, tgt := range t.SwitchValueTargets {
			checkTarget(tgt, fmt.Sprintf("SwitchValue.targets[%d]", i))
		}
		checkTarget(t.SwitchValueDefault, "SwitchValue.default")
	case TermCall:
		if !t.CallDst.IsWritable() {
			out = append(out, v.badf(diag.CodeValidatorBadLValue,
				"block %d: Call destination is not writable", blockIdx))
		}
		checkTarget(t.CallRetBB, "Call.ret_bb")
		checkTarget(t.CallPanicBB, "Call.panic_bb")
		if t.CallTargetK == CallValue {
			out = append(out, v.checkLValue(blockIdx, -1, t.CallTargetL, "Call target")...)
		}
	}
	return out
}
