package optimize_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/optimize"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func TestDriverRunsPipelineToFixpoint(t *testing.T) {
	fn := mir.NewFunction(
		[]types.TypeRef{u32(), u32()},
		nil,
		[]mir.BasicBlock{
			mir.NewBasicBlock(mir.RetTerm(),
				mir.Assign(mir.NewLValue(mir.LocalSlot(1)), mir.ConstRV(mir.Uint(41, u32()))),
				mir.Assign(mir.NewLValue(mir.Return()), mir.Use(mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(1))))),
			),
			mir.NewBasicBlock(mir.RetTerm()), // dead
		},
	)

	res := optimize.NewDriver().Run(fn)
	if !res.Ran {
		t.Fatalf("expected the pipeline to run (no moves in this function)")
	}
	if len(res.Diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", res.Diags)
	}
	if len(res.Function.Blocks) != 1 {
		t.Fatalf("expected the dead block dropped, got %d blocks", len(res.Function.Blocks))
	}
}

func TestDriverGatesOnBorrowCheck(t *testing.T) {
	fn := mir.NewFunction(
		[]types.TypeRef{u32(), u32()},
		nil,
		[]mir.BasicBlock{
			mir.NewBasicBlock(mir.RetTerm(),
				mir.Assign(mir.NewLValue(mir.LocalSlot(1)), mir.ConstRV(mir.Uint(1, u32()))),
				mir.Assign(mir.NewLValue(mir.Return()), mir.Use(mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(1))))),
				mir.Assign(mir.NewLValue(mir.Return()), mir.Use(mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(1))))),
			),
		},
	)

	res := optimize.NewDriver().Run(fn)
	if res.Ran {
		t.Fatalf("expected BorrowCheck to gate the pipeline before any pass ran")
	}
	if len(res.Diags) == 0 {
		t.Fatalf("expected a use-after-move diagnostic")
	}
}
