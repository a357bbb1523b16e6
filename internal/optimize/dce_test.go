package optimize_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/optimize"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func u32() types.TypeRef { return types.NewPrimitive(types.U32) }

func TestEliminateDeadCodeDropsUnreachableBlock(t *testing.T) {
	fn := mir.NewFunction(
		[]types.TypeRef{u32()},
		nil,
		[]mir.BasicBlock{
			mir.NewBasicBlock(mir.RetTerm()),
			mir.NewBasicBlock(mir.RetTerm()), // unreachable
		},
	)

	got := optimize.EliminateDeadCode(fn)
	if len(got.Blocks) != 1 {
		t.Fatalf("expected 1 block after DCE, got %d", len(got.Blocks))
	}
}

func TestEliminateDeadCodeDropsUnusedLocal(t *testing.T) {
	fn := mir.NewFunction(
		[]types.TypeRef{u32(), u32()}, // local 1 never referenced
		nil,
		[]mir.BasicBlock{
			mir.NewBasicBlock(mir.RetTerm(), mir.Assign(mir.NewLValue(mir.Return()), mir.ConstRV(mir.Uint(7, u32())))),
		},
	)

	got := optimize.EliminateDeadCode(fn)
	if len(got.Locals) != 1 {
		t.Fatalf("expected unused local 1 to be dropped, got %d locals", len(got.Locals))
	}
}

func TestEliminateDeadCodeIsIdempotent(t *testing.T) {
	fn := mir.NewFunction(
		[]types.TypeRef{u32()},
		nil,
		[]mir.BasicBlock{
			mir.NewBasicBlock(mir.RetTerm(), mir.Assign(mir.NewLValue(mir.Return()), mir.ConstRV(mir.Uint(1, u32())))),
		},
	)
	once := optimize.EliminateDeadCode(fn)
	twice := optimize.EliminateDeadCode(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("expected a second DCE pass to be a no-op (-once +twice):\n%s", diff)
	}
}
