package optimize_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/optimize"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func TestBorrowCheckAcceptsReinitAfterMove(t *testing.T) {
	fn := mir.NewFunction(
		[]types.TypeRef{u32(), u32()},
		nil,
		[]mir.BasicBlock{
			mir.NewBasicBlock(mir.RetTerm(),
				mir.Assign(mir.NewLValue(mir.LocalSlot(1)), mir.ConstRV(mir.Uint(1, u32()))),
				mir.Assign(mir.NewLValue(mir.Return()), mir.Use(mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(1))))),
				mir.Assign(mir.NewLValue(mir.LocalSlot(1)), mir.ConstRV(mir.Uint(2, u32()))), // re-init
				mir.Assign(mir.NewLValue(mir.Return()), mir.Use(mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(1))))),
			),
		},
	)
	if diags := optimize.BorrowCheck(fn); len(diags) != 0 {
		t.Fatalf("expected no diagnostics after a re-init, got %v", diags)
	}
}

func TestBorrowCheckFlagsDropThenUse(t *testing.T) {
	fn := mir.NewFunction(
		[]types.TypeRef{u32(), u32()},
		nil,
		[]mir.BasicBlock{
			mir.NewBasicBlock(mir.RetTerm(),
				mir.Assign(mir.NewLValue(mir.LocalSlot(1)), mir.ConstRV(mir.Uint(1, u32()))),
				mir.Drop(mir.NewLValue(mir.LocalSlot(1)), mir.DropDeep, nil),
				mir.Assign(mir.NewLValue(mir.Return()), mir.Use(mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(1))))),
			),
		},
	)
	if diags := optimize.BorrowCheck(fn); len(diags) == 0 {
		t.Fatalf("expected a use-after-drop diagnostic")
	}
}
