package mir

import "github.com/malphas-lang/malphas-lang/internal/types"

// BinOpKind enumerates the binary operators an RValue::BinOp can carry
// (spec.md §3): arithmetic (with checked variants), bitwise, shifts, and
// comparisons.
type BinOpKind uint8

const (
	OpAdd BinOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAddChecked
	OpSubChecked
	OpMulChecked
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// UniOpKind enumerates RValue::UniOp operators: negate and bitwise invert.
type UniOpKind uint8

const (
	OpNeg UniOpKind = iota
	OpInvert
)

// RValueKind discriminates the RValue sum (spec.md §3).
type RValueKind uint8

const (
	RvUse RValueKind = iota
	RvConstant
	RvSizedArray
	RvBorrow
	RvCast
	RvBinOp
	RvUniOp
	RvDstMeta
	RvDstPtr
	RvMakeDst
	RvTuple
	RvArray
	RvUnionVariant
	RvEnumVariant
	RvStruct
)

// RValue is the right-hand side of an Assign statement (spec.md §3).
type RValue struct {
	Kind RValueKind

	Use Param // RvUse

	Const Constant // RvConstant

	SizedVal   Param // RvSizedArray
	SizedCount types.ArraySize

	BorrowType types.TypeRef // RvBorrow
	BorrowIsRaw bool
	BorrowOf   LValue

	CastVal  Param // RvCast
	CastType types.TypeRef

	BinL  Param // RvBinOp
	BinOp BinOpKind
	BinR  Param

	UniOp UniOpKind // RvUniOp
	UniV  Param

	DstMetaOf LValue // RvDstMeta
	DstPtrOf  LValue // RvDstPtr

	MakeDstPtr  Param // RvMakeDst
	MakeDstMeta Param

	Vals []Param // RvTuple, RvArray

	UnionPath    types.Path // RvUnionVariant
	UnionIdx     int
	UnionVal     Param

	EnumPath types.Path // RvEnumVariant
	EnumIdx  int
	EnumVals []Param

	StructPath types.Path // RvStruct
	StructVals []Param
}

func Use(p Param) RValue      { return RValue{Kind: RvUse, Use: p} }
func ConstRV(c Constant) RValue { return RValue{Kind: RvConstant, Const: c} }
func SizedArray(val Param, count types.ArraySize) RValue {
	return RValue{Kind: RvSizedArray, SizedVal: val, SizedCount: count}
}
func BorrowRV(ty types.TypeRef, isRaw bool, l LValue) RValue {
	return RValue{Kind: RvBorrow, BorrowType: ty, BorrowIsRaw: isRaw, BorrowOf: l}
}
func Cast(val Param, ty types.TypeRef) RValue { return RValue{Kind: RvCast, CastVal: val, CastType: ty} }
func BinOp(l Param, op BinOpKind, r Param) RValue {
	return RValue{Kind: RvBinOp, BinL: l, BinOp: op, BinR: r}
}
func UniOp(op UniOpKind, v Param) RValue { return RValue{Kind: RvUniOp, UniOp: op, UniV: v} }
func DstMeta(l LValue) RValue            { return RValue{Kind: RvDstMeta, DstMetaOf: l} }
func DstPtr(l LValue) RValue             { return RValue{Kind: RvDstPtr, DstPtrOf: l} }
func MakeDst(ptr, meta Param) RValue     { return RValue{Kind: RvMakeDst, MakeDstPtr: ptr, MakeDstMeta: meta} }
func TupleRV(vals ...Param) RValue       { return RValue{Kind: RvTuple, Vals: vals} }
func ArrayRV(vals ...Param) RValue       { return RValue{Kind: RvArray, Vals: vals} }
func UnionVariant(path types.Path, idx int, val Param) RValue {
	return RValue{Kind: RvUnionVariant, UnionPath: path, UnionIdx: idx, UnionVal: val}
}
func EnumVariant(path types.Path, idx int, vals ...Param) RValue {
	return RValue{Kind: RvEnumVariant, EnumPath: path, EnumIdx: idx, EnumVals: vals}
}
func StructRV(path types.Path, vals ...Param) RValue {
	return RValue{Kind: RvStruct, StructPath: path, StructVals: vals}
}

func equalParamSlice(a, b []Param) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func cloneParamSlice(a []Param) []Param {
	if a == nil {
		return nil
	}
	out := make([]Param, len(a))
	for i, p := range a {
		out[i] = p.Clone()
	}
	return out
}

func (r RValue) Equal(o RValue) bool {
	if r.Kind != o.Kind {
		return false
	}
	switch r.Kind {
	case RvUse:
		return r.Use.Equal(o.Use)
	case RvConstant:
		return r.Const.Equal(o.Const)
	case RvSizedArray:
		return r.SizedVal.Equal(o.SizedVal) && r.SizedCount.Equal(o.SizedCount)
	case RvBorrow:
		return r.BorrowType.Equal(o.BorrowType) && r.BorrowIsRaw == o.BorrowIsRaw && r.BorrowOf.Equal(o.BorrowOf)
	case RvCast:
		return r.CastVal.Equal(o.CastVal) && r.CastType.Equal(o.CastType)
	case RvBinOp:
		return r.BinOp == o.BinOp && r.BinL.Equal(o.BinL) && r.BinR.Equal(o.BinR)
	case RvUniOp:
		return r.UniOp == o.UniOp && r.UniV.Equal(o.UniV)
	case RvDstMeta:
		return r.DstMetaOf.Equal(o.DstMetaOf)
	case RvDstPtr:
		return r.DstPtrOf.Equal(o.DstPtrOf)
	case RvMakeDst:
		return r.MakeDstPtr.Equal(o.MakeDstPtr) && r.MakeDstMeta.Equal(o.MakeDstMeta)
	case RvTuple, RvArray:
		return equalParamSlice(r.Vals, o.Vals)
	case RvUnionVariant:
		return r.UnionPath.Equal(o.UnionPath) && r.UnionIdx == o.UnionIdx && r.UnionVal.Equal(o.UnionVal)
	case RvEnumVariant:
		return r.EnumPath.Equal(o.EnumPath) && r.EnumIdx == o.EnumIdx && equalParamSlice(r.EnumVals, o.EnumVals)
	case RvStruct:
		return r.StructPath.Equal(o.StructPath) && equalParamSlice(r.StructVals, o.StructVals)
	}
	return false
}

func (r RValue) Clone() RValue {
	c := r
	switch r.Kind {
	case RvUse:
		c.Use = r.Use.Clone()
	case RvConstant:
		c.Const = r.Const.Clone()
	case RvSizedArray:
		c.SizedVal = r.SizedVal.Clone()
	case RvBorrow:
		c.BorrowOf = r.BorrowOf.Clone()
	case RvCast:
		c.CastVal = r.CastVal.Clone()
	case RvBinOp:
		c.BinL, c.BinR = r.BinL.Clone(), r.BinR.Clone()
	case RvUniOp:
		c.UniV = r.UniV.Clone()
	case RvDstMeta:
		c.DstMetaOf = r.DstMetaOf.Clone()
	case RvDstPtr:
		c.DstPtrOf = r.DstPtrOf.Clone()
	case RvMakeDst:
		c.MakeDstPtr, c.MakeDstMeta = r.MakeDstPtr.Clone(), r.MakeDstMeta.Clone()
	case RvTuple, RvArray:
		c.Vals = cloneParamSlice(r.Vals)
	case RvUnionVariant:
		c.UnionVal = r.UnionVal.Clone()
	case RvEnumVariant:
		c.EnumVals = cloneParamSlice(r.EnumVals)
	case RvStruct:
		c.StructVals = cloneParamSlice(r.StructVals)
	}
	return c
}
