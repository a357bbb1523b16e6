package mir

// FunctionsEqual reports whether two functions are structurally identical:
// same locals (by type), same drop-flag initial values, same blocks in the
// same order, with every statement and terminator comparing equal
// (spec.md §8, "MIR equality under rename" and "Structural clone is
// identity").
//
// This is a plain structural comparison with no alpha-renaming: two
// functions that differ only by a local-index permutation do NOT compare
// equal here. That normalisation is what internal/mono's Cloner performs
// when it renumbers a function through its substitution maps; once two
// trees have been renumbered onto a common scheme, FunctionsEqual is the
// right tool to confirm they coincide.
func FunctionsEqual(a, b Function) bool {
	return a.Equal(b)
}

// BasicBlocksEqual is the per-block counterpart of FunctionsEqual, useful
// when a test wants to localise a mismatch to a single block.
func BasicBlocksEqual(a, b BasicBlock) bool {
	return a.Equal(b)
}
