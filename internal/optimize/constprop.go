package optimize

import "github.com/malphas-lang/malphas-lang/internal/mir"

// latticeValue is the three-point constant-propagation lattice (spec.md
// §4.5), carried over from the teacher's LatticeValue: Bottom (not yet
// analyzed), Constant (one known value), Top (varies).
type latticeValue uint8

const (
	latBottom latticeValue = iota
	latConstant
	latTop
)

type constInfo struct {
	lattice latticeValue
	value   mir.Constant
}

// PropagateConstants runs sparse constant propagation to a fixpoint over a
// single function's local slots, then rewrites every operand that reads a
// known-constant local into a literal (spec.md §4.5), the same two-phase
// shape as the teacher's PropagateConstants/replaceConstants split.
func PropagateConstants(fn mir.Function) mir.Function {
	lattice := make(map[int]*constInfo, len(fn.Locals))
	for i := range fn.Locals {
		lattice[i] = &constInfo{lattice: latBottom}
	}

	changed := true
	for changed {
		changed = false
		for _, bb := range fn.Blocks {
			for _, s := range bb.Statements {
				if analyzeStatement(s, lattice) {
					changed = true
				}
			}
		}
	}

	return replaceConstants(fn, lattice)
}

func evaluateParam(p mir.Param, lattice map[int]*constInfo) constInfo {
	switch p.Kind {
	case mir.ParamConstant:
		return constInfo{lattice: latConstant, value: p.Constant}
	case mir.ParamLValue:
		if p.LValue.Storage.Kind == mir.StorageLocal && len(p.LValue.Wrappers) == 0 {
			if info, ok := lattice[p.LValue.Storage.Index]; ok {
				return *info
			}
		}
		return constInfo{lattice: latTop}
	default:
		return constInfo{lattice: latTop}
	}
}

func updateLattice(lattice map[int]*constInfo, idx int, next constInfo) bool {
	cur, ok := lattice[idx]
	if !ok {
		lattice[idx] = &next
		return true
	}
	switch {
	case cur.lattice == latTop || next.lattice == latBottom:
		return false
	case cur.lattice == latBottom || next.lattice == latTop:
		*cur = next
		return true
	case !cur.value.Equal(next.value):
		*cur = constInfo{lattice: latTop}
		return true
	}
	return false
}

// analyzeStatement updates the lattice for a single statement's
// destination (non-StmtAssign statements don't define locals and are
// skipped), returning whether anything changed.
func analyzeStatement(s mir.Statement, lattice map[int]*constInfo) bool {
	if s.Kind != mir.StmtAssign {
		return false
	}
	if s.AssignDst.Storage.Kind != mir.StorageLocal || len(s.AssignDst.Wrappers) != 0 {
		return false
	}
	idx := s.AssignDst.Storage.Index

	var next constInfo
	switch s.AssignSrc.Kind {
	case mir.RvUse:
		next = evaluateParam(s.AssignSrc.Use, lattice)
	case mir.RvConstant:
		next = constInfo{lattice: latConstant, value: s.AssignSrc.Const}
	case mir.RvBinOp:
		if folded, ok := foldBinOp(s.AssignSrc, lattice); ok {
			next = constInfo{lattice: latConstant, value: folded}
		} else {
			next = constInfo{lattice: latTop}
		}
	default:
		// Borrow, cast, aggregate construction, etc. are never
		// compile-time constant on this side.
		next = constInfo{lattice: latTop}
	}
	return updateLattice(lattice, idx, next)
}

// foldBinOp evaluates an integer RvBinOp with two constant operands,
// mirroring the teacher's evaluateOperatorCall (int64-only, division by
// zero bails out to Top rather than folding).
func foldBinOp(r mir.RValue, lattice map[int]*constInfo) (mir.Constant, bool) {
	l := evaluateParam(r.BinL, lattice)
	rr := evaluateParam(r.BinR, lattice)
	if l.lattice != latConstant || rr.lattice != latConstant {
		return mir.Constant{}, false
	}
	if l.value.Kind != mir.ConstInt && l.value.Kind != mir.ConstUint {
		return mir.Constant{}, false
	}
	if l.value.Kind != rr.value.Kind {
		return mir.Constant{}, false
	}

	signed := l.value.Kind == mir.ConstInt
	var lv, rv, out int64
	if signed {
		lv, rv = l.value.IntValue, rr.value.IntValue
	} else {
		lv, rv = int64(l.value.UintValue), int64(rr.value.UintValue)
	}

	switch r.BinOp {
	case mir.OpAdd, mir.OpAddChecked:
		out = lv + rv
	case mir.OpSub, mir.OpSubChecked:
		out = lv - rv
	case mir.OpMul, mir.OpMulChecked:
		out = lv * rv
	case mir.OpDiv:
		if rv == 0 {
			return mir.Constant{}, false
		}
		out = lv / rv
	default:
		return mir.Constant{}, false
	}

	if signed {
		return mir.Int(out, l.value.Type), true
	}
	return mir.Uint(uint64(out), l.value.Type), true
}

func replaceParam(p mir.Param, lattice map[int]*constInfo) mir.Param {
	if p.Kind != mir.ParamLValue {
		return p
	}
	info := evaluateParam(p, lattice)
	if info.lattice == latConstant {
		return mir.ParamFromConstant(info.value)
	}
	return p
}

func replaceConstants(fn mir.Function, lattice map[int]*constInfo) mir.Function {
	out := fn.Clone()
	for bi := range out.Blocks {
		for si := range out.Blocks[bi].Statements {
			out.Blocks[bi].Statements[si] = replaceStatementParams(out.Blocks[bi].Statements[si], lattice)
		}
		out.Blocks[bi].Terminator = replaceTerminatorParams(out.Blocks[bi].Terminator, lattice)
	}
	return out
}

func replaceStatementParams(s mir.Statement, lattice map[int]*constInfo) mir.Statement {
	if s.Kind != mir.StmtAssign {
		return s
	}
	s.AssignSrc = replaceRValueParams(s.AssignSrc, lattice)
	return s
}

func replaceRValueParams(r mir.RValue, lattice map[int]*constInfo) mir.RValue {
	switch r.Kind {
	case mir.RvUse:
		r.Use = replaceParam(r.Use, lattice)
	case mir.RvSizedArray:
		r.SizedVal = replaceParam(r.SizedVal, lattice)
	case mir.RvCast:
		r.CastVal = replaceParam(r.CastVal, lattice)
	case mir.RvBinOp:
		r.BinL = replaceParam(r.BinL, lattice)
		r.BinR = replaceParam(r.BinR, lattice)
	case mir.RvUniOp:
		r.UniV = replaceParam(r.UniV, lattice)
	case mir.RvMakeDst:
		r.MakeDstPtr = replaceParam(r.MakeDstPtr, lattice)
		r.MakeDstMeta = replaceParam(r.MakeDstMeta, lattice)
	case mir.RvTuple, mir.RvArray:
		for i, v := range r.Vals {
			r.Vals[i] = replaceParam(v, lattice)
		}
	case mir.RvUnionVariant:
		r.UnionVal = replaceParam(r.UnionVal, lattice)
	case mir.RvEnumVariant:
		for i, v := range r.EnumVals {
			r.EnumVals[i] = replaceParam(v, lattice)
		}
	case mir.RvStruct:
		for i, v := range r.StructVals {
			r.StructVals[i] = replaceParam(v, lattice)
		}
	}
	return r
}

func replaceTerminatorParams(t mir.Terminator, lattice map[int]*constInfo) mir.Terminator {
	switch t.Kind {
	case mir.TermIf:
		t.IfCond = replaceParam(t.IfCond, lattice)
	case mir.TermSwitchValue:
		t.SwitchValueVal = replaceParam(t.SwitchValueVal, lattice)
	case mir.TermCall:
		for i, a := range t.CallArgs {
			t.CallArgs[i] = replaceParam(a, lattice)
		}
	}
	return t
}
