package mir

import "github.com/malphas-lang/malphas-lang/internal/types"

// ParamKind discriminates an operand (spec.md §3 MIR Param): an r-value
// usable as a function argument. The model deliberately keeps Param
// (lvalue | borrow | constant) distinct from RValue: passes never construct
// RValue::Constant wrapping an LValue, they use Param for call arguments and
// RValue only on an Assign's right-hand side (spec.md §4.3).
type ParamKind uint8

const (
	ParamLValue ParamKind = iota
	ParamBorrow
	ParamConstant
)

type Param struct {
	Kind ParamKind

	LValue LValue // ParamLValue

	BorrowType types.TypeRef // ParamBorrow
	BorrowOf   LValue        // ParamBorrow

	Constant Constant // ParamConstant
}

func ParamFromLValue(l LValue) Param { return Param{Kind: ParamLValue, LValue: l} }
func ParamFromBorrow(ty types.TypeRef, l LValue) Param {
	return Param{Kind: ParamBorrow, BorrowType: ty, BorrowOf: l}
}
func ParamFromConstant(c Constant) Param { return Param{Kind: ParamConstant, Constant: c} }

func (p Param) Equal(o Param) bool {
	if p.Kind != o.Kind {
		return false
	}
	switch p.Kind {
	case ParamLValue:
		return p.LValue.Equal(o.LValue)
	case ParamBorrow:
		return p.BorrowType.Equal(o.BorrowType) && p.BorrowOf.Equal(o.BorrowOf)
	case ParamConstant:
		return p.Constant.Equal(o.Constant)
	}
	return false
}

func (p Param) Clone() Param {
	switch p.Kind {
	case ParamLValue:
		return Param{Kind: ParamLValue, LValue: p.LValue.Clone()}
	case ParamBorrow:
		return Param{Kind: ParamBorrow, BorrowType: p.BorrowType, BorrowOf: p.BorrowOf.Clone()}
	case ParamConstant:
		return Param{Kind: ParamConstant, Constant: p.Constant.Clone()}
	}
	return p
}
