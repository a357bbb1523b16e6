package optimize_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/optimize"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func TestPropagateConstantsRewritesBinOpOperands(t *testing.T) {
	fn := mir.NewFunction(
		[]types.TypeRef{u32(), u32(), u32()},
		nil,
		[]mir.BasicBlock{
			mir.NewBasicBlock(
				mir.RetTerm(),
				mir.Assign(mir.NewLValue(mir.LocalSlot(1)), mir.ConstRV(mir.Uint(2, u32()))),
				mir.Assign(mir.NewLValue(mir.LocalSlot(2)), mir.ConstRV(mir.Uint(3, u32()))),
				mir.Assign(mir.NewLValue(mir.Return()), mir.BinOp(
					mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(1))), mir.OpAdd,
					mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(2))),
				)),
			),
		},
	)

	got := optimize.PropagateConstants(fn)
	last := got.Blocks[0].Statements[2]
	if last.AssignSrc.Kind != mir.RvBinOp {
		t.Fatalf("expected the add to remain a BinOp rvalue (fold only rewrites its operands), got kind %d", last.AssignSrc.Kind)
	}
	l, r := last.AssignSrc.BinL, last.AssignSrc.BinR
	if l.Kind != mir.ParamConstant || l.Constant.UintValue != 2 {
		t.Fatalf("expected left operand replaced with constant 2, got %+v", l)
	}
	if r.Kind != mir.ParamConstant || r.Constant.UintValue != 3 {
		t.Fatalf("expected right operand replaced with constant 3, got %+v", r)
	}
}

func TestPropagateConstantsReplacesUseOfConstantLocal(t *testing.T) {
	fn := mir.NewFunction(
		[]types.TypeRef{u32(), u32()},
		nil,
		[]mir.BasicBlock{
			mir.NewBasicBlock(
				mir.RetTerm(),
				mir.Assign(mir.NewLValue(mir.LocalSlot(1)), mir.ConstRV(mir.Uint(42, u32()))),
				mir.Assign(mir.NewLValue(mir.Return()), mir.Use(mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(1))))),
			),
		},
	)

	got := optimize.PropagateConstants(fn)
	last := got.Blocks[0].Statements[1]
	if last.AssignSrc.Use.Kind != mir.ParamConstant || last.AssignSrc.Use.Constant.UintValue != 42 {
		t.Fatalf("expected the return's Use operand rewritten to a literal 42, got %+v", last.AssignSrc.Use)
	}
}
