// Package optimize is the MIR optimiser (component O of spec.md §4.5): a
// fixed-order pipeline of dataflow passes — dead-code elimination,
// loop-invariant code motion, and constant propagation — plus a Driver
// that reruns the pipeline to a fixpoint and revalidates the function
// after every pass.
//
// Grounded on the teacher's internal/mir/optimize package (dce.go,
// licm.go, constant_prop.go), rewritten against the index-addressed
// Function/BasicBlock model of internal/mir: the teacher's passes walk a
// pointer-linked *BasicBlock CFG and rebuild it node by node, but this
// model has no back-pointers, so reachability and use analysis here work
// over plain block/local indices and the mechanical renumbering (the part
// the teacher's passes hand-roll per pass) is delegated to internal/mono's
// Cloner, which already knows how to drop and compact indices.
package optimize

import "github.com/malphas-lang/malphas-lang/internal/mir"

func markStorage(s mir.Storage, used map[int]bool) {
	if s.Kind == mir.StorageLocal || s.Kind == mir.StorageArgument {
		used[s.Index] = true
	}
}

func markLValue(l mir.LValue, used map[int]bool) {
	markStorage(l.Storage, used)
	for _, w := range l.Wrappers {
		if w.Kind == mir.WrapIndex {
			used[w.Index] = true
		}
	}
}

func markParam(p mir.Param, used map[int]bool) {
	switch p.Kind {
	case mir.ParamLValue:
		markLValue(p.LValue, used)
	case mir.ParamBorrow:
		markLValue(p.BorrowOf, used)
	}
}

func markRValue(r mir.RValue, used map[int]bool) {
	switch r.Kind {
	case mir.RvUse:
		markParam(r.Use, used)
	case mir.RvSizedArray:
		markParam(r.SizedVal, used)
	case mir.RvBorrow:
		markLValue(r.BorrowOf, used)
	case mir.RvCast:
		markParam(r.CastVal, used)
	case mir.RvBinOp:
		markParam(r.BinL, used)
		markParam(r.BinR, used)
	case mir.RvUniOp:
		markParam(r.UniV, used)
	case mir.RvDstMeta:
		markLValue(r.DstMetaOf, used)
	case mir.RvDstPtr:
		markLValue(r.DstPtrOf, used)
	case mir.RvMakeDst:
		markParam(r.MakeDstPtr, used)
		markParam(r.MakeDstMeta, used)
	case mir.RvTuple, mir.RvArray:
		for _, v := range r.Vals {
			markParam(v, used)
		}
	case mir.RvUnionVariant:
		markParam(r.UnionVal, used)
	case mir.RvEnumVariant:
		for _, v := range r.EnumVals {
			markParam(v, used)
		}
	case mir.RvStruct:
		for _, v := range r.StructVals {
			markParam(v, used)
		}
	}
}

// markStatement records, in usedLocals and usedFlags, every local and drop
// flag a statement touches — as a read, a write, or a link — mirroring the
// teacher's own buildUsedLocals, which is a touch analysis rather than a
// true liveness analysis (it never removes a dead store, only a wholly
// unreferenced local).
func markStatement(s mir.Statement, usedLocals, usedFlags map[int]bool) {
	switch s.Kind {
	case mir.StmtAssign:
		markLValue(s.AssignDst, usedLocals)
		markRValue(s.AssignSrc, usedLocals)
	case mir.StmtSetDropFlag:
		usedFlags[s.DropFlagIdx] = true
		if s.DropFlagOther != nil {
			usedFlags[*s.DropFlagOther] = true
		}
	case mir.StmtSaveDropFlag, mir.StmtLoadDropFlag:
		usedFlags[s.SavedFlagIdx] = true
	case mir.StmtDrop:
		markLValue(s.DropSlot, usedLocals)
		if s.DropFlagRef != nil {
			usedFlags[*s.DropFlagRef] = true
		}
	case mir.StmtScopeEnd:
		for _, li := range s.ScopeLocals {
			usedLocals[li] = true
		}
	case mir.StmtAsm, mir.StmtAsm2:
		for _, p := range s.AsmParams {
			if p.Kind == mir.AsmReg {
				for _, l := range p.RegLVals {
					markLValue(l, usedLocals)
				}
			}
		}
	}
}

func markTerminator(t mir.Terminator, usedLocals map[int]bool) {
	switch t.Kind {
	case mir.TermPanic:
		if t.PanicDst != nil {
			markLValue(*t.PanicDst, usedLocals)
		}
	case mir.TermIf:
		markParam(t.IfCond, usedLocals)
	case mir.TermSwitch:
		markLValue(t.SwitchVal, usedLocals)
	case mir.TermSwitchValue:
		markParam(t.SwitchValueVal, usedLocals)
	case mir.TermCall:
		markLValue(t.CallDst, usedLocals)
		if t.CallTargetK == mir.CallValue {
			markLValue(t.CallTargetL, usedLocals)
		}
		for _, a := range t.CallArgs {
			markParam(a, usedLocals)
		}
	}
}

// successors lists the block indices a terminator may transfer control to.
// Return, Diverge, Panic, and Incomplete have none.
func successors(t mir.Terminator) []int {
	switch t.Kind {
	case mir.TermGoto:
		return []int{t.GotoTarget}
	case mir.TermIf:
		return []int{t.IfThen, t.IfElse}
	case mir.TermSwitch:
		return append([]int(nil), t.SwitchTargets...)
	case mir.TermSwitchValue:
		out := make([]int, 0, len(t.SwitchValueTargets)+1)
		out = append(out, t.SwitchValueDefault)
		return append(out, t.SwitchValueTargets...)
	case mir.TermCall:
		return []int{t.CallRetBB, t.CallPanicBB}
	default:
		return nil
	}
}
