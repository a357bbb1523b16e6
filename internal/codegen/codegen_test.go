package codegen_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/codegen"
	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func u32() types.TypeRef { return types.NewPrimitive(types.U32) }

func TestRecorderEmitsMangledSymbolAndKeepsItem(t *testing.T) {
	path := types.GenericPath{Path: types.NewSimplePath("mycrate", "add")}
	fn := mir.NewFunction(
		[]types.TypeRef{u32(), u32(), u32()},
		nil,
		[]mir.BasicBlock{
			mir.NewBasicBlock(mir.RetTerm(),
				mir.Assign(mir.NewLValue(mir.Return()), mir.BinOp(
					mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(1))), mir.OpAdd,
					mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(2))),
				)),
			),
		},
	)

	rec := codegen.NewRecorder()
	got, err := rec.Emit(path, fn, []types.TypeRef{u32(), u32()}, u32())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Symbol == "" {
		t.Fatalf("expected a non-empty mangled symbol")
	}
	if len(rec.Items) != 1 {
		t.Fatalf("expected one recorded item, got %d", len(rec.Items))
	}
	found, ok := rec.Lookup(got.Symbol)
	if !ok || !mir.FunctionsEqual(found.Fn, fn) {
		t.Fatalf("expected Lookup to find the recorded function by symbol")
	}
}

func TestRecorderRejectsFunctionWithoutReturnSlot(t *testing.T) {
	path := types.GenericPath{Path: types.NewSimplePath("mycrate", "empty")}
	rec := codegen.NewRecorder()
	if _, err := rec.Emit(path, mir.Function{}, nil, u32()); err == nil {
		t.Fatalf("expected an error for a function with no locals")
	}
}
