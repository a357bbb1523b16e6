package mono_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/mono"
	"github.com/malphas-lang/malphas-lang/internal/target"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func TestSubstTypeReplacesGenericRef(t *testing.T) {
	m := mono.ImplMethodSelf{ItemTypes: []types.TypeRef{types.NewPrimitive(types.U32)}}
	generic := types.NewGenericRef(types.GenericRef{Group: types.GroupItem, Index: 0})
	got := mono.SubstType(m, generic)
	if !got.Equal(types.NewPrimitive(types.U32)) {
		t.Fatalf("expected substitution to u32, got %s", got.String())
	}
}

func TestSubstTypeLeavesUnknownGroupUntouched(t *testing.T) {
	m := mono.HRBOnly{Types: []types.TypeRef{types.NewPrimitive(types.Bool)}}
	itemRef := types.NewGenericRef(types.GenericRef{Group: types.GroupItem, Index: 0})
	got := mono.SubstType(m, itemRef)
	if !got.Equal(itemRef) {
		t.Fatalf("expected an item-group ref to pass through an HRB-only monomorphiser unchanged")
	}
}

func TestSubstTypeRecursesIntoTuple(t *testing.T) {
	m := mono.ImplMethodSelf{ItemTypes: []types.TypeRef{types.NewPrimitive(types.I64)}}
	itemRef := types.NewGenericRef(types.GenericRef{Group: types.GroupItem, Index: 0})
	tuple := types.NewTuple(itemRef, types.NewPrimitive(types.Bool))
	got := mono.SubstType(m, tuple)
	want := types.NewTuple(types.NewPrimitive(types.I64), types.NewPrimitive(types.Bool))
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want.String(), got.String())
	}
}

func TestClonerRenumbersLocalsAndBlocks(t *testing.T) {
	u32 := types.NewPrimitive(types.U32)
	fn := mir.NewFunction(
		[]types.TypeRef{u32, u32},
		nil,
		[]mir.BasicBlock{
			mir.NewBasicBlock(mir.Goto(1), mir.Assign(mir.NewLValue(mir.LocalSlot(1)), mir.Use(mir.ParamFromLValue(mir.NewLValue(mir.Argument(1)))))),
			mir.NewBasicBlock(mir.RetTerm(), mir.Assign(mir.NewLValue(mir.Return()), mir.Use(mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(1)))))),
		},
	)

	maps := mono.Maps{Blocks: []int{1, 0}, Locals: []int{0, 5}, DropFlags: nil}
	cloner := mono.NewCloner(mono.Identity{}, maps)
	newLocals := make([]types.TypeRef, 6)
	newLocals[0], newLocals[5] = u32, u32
	out := cloner.CloneFunction(fn, newLocals, nil)

	if out.Blocks[0].Terminator.Kind != mir.TermReturn {
		t.Fatalf("expected block 0 (remapped from old block 1) to end in Return")
	}
	if out.Blocks[1].Terminator.GotoTarget != 0 {
		t.Fatalf("expected block 1's Goto target to be remapped to block 0")
	}
	assignTo := out.Blocks[1].Statements[0].AssignDst.Storage.Index
	if assignTo != 5 {
		t.Fatalf("expected local 1 to be remapped to local 5, got %d", assignTo)
	}
}

func TestDecodeEvaluatedHonoursEndianness(t *testing.T) {
	big := target.Descriptor{Endianness: target.BigEndian}
	c, err := mono.DecodeEvaluated([]byte{0x00, 0x00, 0x00, 0x2a}, types.U32, big)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind != mir.ConstUint || c.UintValue != 42 {
		t.Fatalf("expected 42, got %+v", c)
	}
}

func TestDecodeEvaluatedRejectsFloat(t *testing.T) {
	if _, err := mono.DecodeEvaluated([]byte{0, 0, 0, 0}, types.F32, target.Default); err == nil {
		t.Fatalf("expected floating-point const-generic decoding to be rejected")
	}
}

func TestDecodeEvaluatedDecodesCharAsUnsigned(t *testing.T) {
	big := target.Descriptor{Endianness: target.BigEndian}
	c, err := mono.DecodeEvaluated([]byte{0x00, 0x00, 0x00, 0x41}, types.Char, big)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind != mir.ConstUint || c.UintValue != 'A' {
		t.Fatalf("expected 'A' (0x41), got %+v", c)
	}
}
