package mir

// CloneFunction performs a plain deep-clone of fn with no substitution and
// no block/local/drop-flag renumbering (spec.md §4.3, §8 "Structural clone
// is identity": FunctionsEqual(fn, CloneFunction(fn)) must hold for every
// fn). It exists alongside Function.Clone as the package's public entry
// point, matching the constructor/equality/clone triple the spec calls out
// for every MIR node.
func CloneFunction(fn Function) Function {
	return fn.Clone()
}
