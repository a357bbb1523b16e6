package mir

import "github.com/malphas-lang/malphas-lang/internal/types"

// DropKind distinguishes a deep (recursive) drop from a shallow one
// (spec.md §3 Drop statement).
type DropKind uint8

const (
	DropDeep DropKind = iota
	DropShallow
)

// AsmParamKind discriminates an inline-asm operand (spec.md §3 Asm2, §4.4
// AsmParam::Sym/Const/Reg).
type AsmParamKind uint8

const (
	AsmSym AsmParamKind = iota
	AsmConst
	AsmReg
)

// AsmParam is one inline-asm operand.
type AsmParam struct {
	Kind AsmParamKind

	Sym types.Path // AsmSym: substituted as a path (spec.md §4.4)

	ConstVal Constant // AsmConst

	RegSpec  string   // AsmReg: the register specifier, preserved verbatim
	RegLVals []LValue // AsmReg: lvalues tied to the register, cloned through renumbering maps
}

// StmtKind discriminates the Statement sum (spec.md §3).
type StmtKind uint8

const (
	StmtAssign StmtKind = iota
	StmtAsm
	StmtAsm2
	StmtSetDropFlag
	StmtSaveDropFlag
	StmtLoadDropFlag
	StmtDrop
	StmtScopeEnd
)

// Statement is a non-terminating MIR operation (spec.md §3).
type Statement struct {
	Kind StmtKind

	// StmtAssign
	AssignDst LValue
	AssignSrc RValue

	// StmtAsm / StmtAsm2
	AsmOptions []string
	AsmLines   []string
	AsmParams  []AsmParam

	// StmtSetDropFlag
	DropFlagIdx   int
	DropFlagNew   bool
	DropFlagOther *int // nil means "no linked flag" (spec.md §9: avoid the ~0 sentinel)

	// StmtSaveDropFlag / StmtLoadDropFlag
	SavedFlagIdx int

	// StmtDrop
	DropSlot    LValue
	DropKind    DropKind
	DropFlagRef *int // nil means unconditional drop

	// StmtScopeEnd
	ScopeLocals []int
}

func Assign(dst LValue, src RValue) Statement {
	return Statement{Kind: StmtAssign, AssignDst: dst, AssignSrc: src}
}

func SetDropFlag(idx int, newVal bool, other *int) Statement {
	return Statement{Kind: StmtSetDropFlag, DropFlagIdx: idx, DropFlagNew: newVal, DropFlagOther: other}
}

func SaveDropFlag(idx int) Statement { return Statement{Kind: StmtSaveDropFlag, SavedFlagIdx: idx} }
func LoadDropFlag(idx int) Statement { return Statement{Kind: StmtLoadDropFlag, SavedFlagIdx: idx} }

func Drop(slot LValue, kind DropKind, flagIdx *int) Statement {
	return Statement{Kind: StmtDrop, DropSlot: slot, DropKind: kind, DropFlagRef: flagIdx}
}

func ScopeEnd(locals ...int) Statement { return Statement{Kind: StmtScopeEnd, ScopeLocals: locals} }

func intPtrEqual(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s Statement) Equal(o Statement) bool {
	if s.Kind != o.Kind {
		return false
	}
	switch s.Kind {
	case StmtAssign:
		return s.AssignDst.Equal(o.AssignDst) && s.AssignSrc.Equal(o.AssignSrc)
	case StmtAsm, StmtAsm2:
		if len(s.AsmLines) != len(o.AsmLines) || len(s.AsmOptions) != len(o.AsmOptions) || len(s.AsmParams) != len(o.AsmParams) {
			return false
		}
		for i := range s.AsmLines {
			if s.AsmLines[i] != o.AsmLines[i] {
				return false
			}
		}
		for i := range s.AsmOptions {
			if s.AsmOptions[i] != o.AsmOptions[i] {
				return false
			}
		}
		for i := range s.AsmParams {
			if !asmParamEqual(s.AsmParams[i], o.AsmParams[i]) {
				return false
			}
		}
		return true
	case StmtSetDropFlag:
		return s.DropFlagIdx == o.DropFlagIdx && s.DropFlagNew == o.DropFlagNew && intPtrEqual(s.DropFlagOther, o.DropFlagOther)
	case StmtSaveDropFlag, StmtLoadDropFlag:
		return s.SavedFlagIdx == o.SavedFlagIdx
	case StmtDrop:
		return s.DropSlot.Equal(o.DropSlot) && s.DropKind == o.DropKind && intPtrEqual(s.DropFlagRef, o.DropFlagRef)
	case StmtScopeEnd:
		return intSliceEqual(s.ScopeLocals, o.ScopeLocals)
	}
	return false
}

func asmParamEqual(a, b AsmParam) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case AsmSym:
		return a.Sym.Equal(b.Sym)
	case AsmConst:
		return a.ConstVal.Equal(b.ConstVal)
	case AsmReg:
		if a.RegSpec != b.RegSpec || len(a.RegLVals) != len(b.RegLVals) {
			return false
		}
		for i := range a.RegLVals {
			if !a.RegLVals[i].Equal(b.RegLVals[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func clonePtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (s Statement) Clone() Statement {
	c := s
	switch s.Kind {
	case StmtAssign:
		c.AssignDst = s.AssignDst.Clone()
		c.AssignSrc = s.AssignSrc.Clone()
	case StmtAsm, StmtAsm2:
		c.AsmOptions = append([]string(nil), s.AsmOptions...)
		c.AsmLines = append([]string(nil), s.AsmLines...)
		c.AsmParams = make([]AsmParam, len(s.AsmParams))
		for i, p := range s.AsmParams {
			c.AsmParams[i] = cloneAsmParam(p)
		}
	case StmtSetDropFlag:
		c.DropFlagOther = clonePtr(s.DropFlagOther)
	case StmtDrop:
		c.DropSlot = s.DropSlot.Clone()
		c.DropFlagRef = clonePtr(s.DropFlagRef)
	case StmtScopeEnd:
		c.ScopeLocals = append([]int(nil), s.ScopeLocals...)
	}
	return c
}

func cloneAsmParam(p AsmParam) AsmParam {
	c := p
	if p.Kind == AsmReg {
		c.RegLVals = make([]LValue, len(p.RegLVals))
		for i, l := range p.RegLVals {
			c.RegLVals[i] = l.Clone()
		}
	}
	return c
}
