package optimize

import (
	"github.com/malphas-lang/malphas-lang/internal/diag"
	"github.com/malphas-lang/malphas-lang/internal/mir"
)

// Driver fixes the pass order DCE -> LICM -> constant propagation,
// reruns internal/mir's Validator after every pass, and iterates the whole
// pipeline to a fixpoint or a bounded number of rounds (spec.md §4.5).
// Every call is gated on BorrowCheck first: if the function doesn't pass
// the conservative move/use-after-move check, the pipeline never runs.
type Driver struct {
	// MaxIterations bounds the fixpoint loop; non-positive means the
	// default of 16 rounds.
	MaxIterations int
}

func NewDriver() *Driver { return &Driver{MaxIterations: 16} }

// Result is one Driver.Run's outcome: the (possibly unchanged) function,
// any diagnostics raised along the way, and whether the pipeline actually
// ran the optimisation passes (false when BorrowCheck failed).
type Result struct {
	Function mir.Function
	Diags    []diag.Diagnostic
	Ran      bool
}

func (d *Driver) Run(fn mir.Function) Result {
	if bcDiags := BorrowCheck(fn); len(bcDiags) > 0 {
		return Result{Function: fn, Diags: bcDiags, Ran: false}
	}

	max := d.MaxIterations
	if max <= 0 {
		max = 16
	}

	var diags []diag.Diagnostic
	cur := fn
	for i := 0; i < max; i++ {
		next := cur
		for _, pass := range []func(mir.Function) mir.Function{EliminateDeadCode, HoistLoopInvariants, PropagateConstants} {
			next = pass(next)
			if v := mir.NewValidator(next).Validate(); len(v) > 0 {
				return Result{Function: next, Diags: append(diags, v...), Ran: true}
			}
		}
		if mir.FunctionsEqual(cur, next) {
			return Result{Function: next, Diags: diags, Ran: true}
		}
		cur = next
	}
	return Result{Function: cur, Diags: diags, Ran: true}
}
