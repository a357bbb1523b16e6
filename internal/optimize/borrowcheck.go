package optimize

import (
	"fmt"

	"github.com/malphas-lang/malphas-lang/internal/diag"
	"github.com/malphas-lang/malphas-lang/internal/mir"
)

// BorrowCheck gates the optimiser pipeline on a conservative
// move/use-after-move check (spec.md §4.5: "borrow-check is a
// precondition"). It is a flow-insensitive, per-block-order scan over
// local slots, not a real NLL region inference (explicitly out of scope):
// any by-value read of a plain local counts as a move regardless of the
// local's actual Copy-ness, since type copyability isn't modeled at the
// MIR layer. A later Assign to the same local re-initializes it; a Drop
// also retires it. Reading a retired local is reported as use-after-move.
func BorrowCheck(fn mir.Function) []diag.Diagnostic {
	var diags []diag.Diagnostic
	moved := make(map[int]bool)

	use := func(idx int) {
		if moved[idx] {
			diags = append(diags, diag.New(
				diag.StageValidator, diag.SeverityError, diag.CodeValidatorBadLValue,
				fmt.Sprintf("use of local %d after it was moved or dropped", idx),
				diag.Span{},
			))
		}
		moved[idx] = true
	}

	for _, bb := range fn.Blocks {
		for _, s := range bb.Statements {
			switch s.Kind {
			case mir.StmtAssign:
				for _, idx := range operandLocals(s.AssignSrc) {
					use(idx)
				}
				if s.AssignDst.Storage.Kind == mir.StorageLocal && len(s.AssignDst.Wrappers) == 0 {
					moved[s.AssignDst.Storage.Index] = false
				}
			case mir.StmtDrop:
				if s.DropSlot.Storage.Kind == mir.StorageLocal && len(s.DropSlot.Wrappers) == 0 {
					moved[s.DropSlot.Storage.Index] = true
				}
			}
		}
		if bb.Terminator.Kind == mir.TermCall {
			for _, a := range bb.Terminator.CallArgs {
				if idx, ok := paramLocal(a); ok {
					use(idx)
				}
			}
		}
	}
	return diags
}
