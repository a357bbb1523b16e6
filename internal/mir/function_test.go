package mir_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func simpleFn() mir.Function {
	u32 := types.NewPrimitive(types.U32)
	locals := []types.TypeRef{u32, u32, u32} // [0]=return, [1]=arg, [2]=temp
	blocks := []mir.BasicBlock{
		mir.NewBasicBlock(
			mir.Goto(1),
			mir.Assign(mir.NewLValue(mir.LocalSlot(2)), mir.Use(mir.ParamFromLValue(mir.NewLValue(mir.Argument(1))))),
		),
		mir.NewBasicBlock(
			mir.RetTerm(),
			mir.Assign(mir.NewLValue(mir.Return()), mir.Use(mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(2))))),
		),
	}
	return mir.NewFunction(locals, nil, blocks)
}

func TestStructuralCloneIsIdentity(t *testing.T) {
	fn := simpleFn()
	clone := mir.CloneFunction(fn)
	if !mir.FunctionsEqual(fn, clone) {
		t.Fatalf("expected CloneFunction to produce a structurally identical function")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	fn := simpleFn()
	clone := fn.Clone()
	clone.Blocks[0].Statements[0] = mir.Assign(mir.NewLValue(mir.LocalSlot(2)), mir.ConstRV(mir.Bool(true)))
	if mir.FunctionsEqual(fn, clone) {
		t.Fatalf("mutating the clone must not affect the original")
	}
}

func TestFunctionsEqualDetectsDifference(t *testing.T) {
	a := simpleFn()
	b := simpleFn()
	b.Blocks[1].Terminator = mir.Diverge()
	if mir.FunctionsEqual(a, b) {
		t.Fatalf("expected functions with different terminators to compare unequal")
	}
}

func TestValidatorAcceptsWellFormedFunction(t *testing.T) {
	fn := simpleFn()
	diags := mir.NewValidator(fn).Validate()
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
}

func TestValidatorRejectsStaticAssignDestination(t *testing.T) {
	fn := simpleFn()
	staticPath := types.NewSimplePath("mycrate", "GLOBAL")
	fn.Blocks[0].Statements[0] = mir.Assign(mir.NewLValue(mir.Static(staticPath)), mir.ConstRV(mir.Bool(true)))
	diags := mir.NewValidator(fn).Validate()
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for a non-writable assign destination")
	}
}

func TestValidatorRejectsOutOfRangeGoto(t *testing.T) {
	fn := simpleFn()
	fn.Blocks[0].Terminator = mir.Goto(99)
	diags := mir.NewValidator(fn).Validate()
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for an out-of-range Goto target")
	}
}

func TestValidatorRejectsSwitchValueArityMismatch(t *testing.T) {
	fn := simpleFn()
	fn.Blocks[0].Terminator = mir.SwitchValueTerm(
		mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(1))),
		1,
		[]int{0},
		[]mir.SwitchValueEntry{{Kind: mir.SwitchValueUnsigned, Uint: 0}, {Kind: mir.SwitchValueUnsigned, Uint: 1}},
	)
	diags := mir.NewValidator(fn).Validate()
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for mismatched SwitchValue targets/values arity")
	}
}

func TestValidatorRejectsIncompleteTerminator(t *testing.T) {
	fn := simpleFn()
	fn.Blocks[1].Terminator = mir.Incomplete()
	diags := mir.NewValidator(fn).Validate()
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for an Incomplete terminator")
	}
}
