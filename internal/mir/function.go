package mir

import "github.com/malphas-lang/malphas-lang/internal/types"

// BasicBlock is one entry in Function.Blocks, addressed purely by index
// (spec.md §3/§4.4): nothing in the tree holds a pointer to a block, so
// renumbering during monomorphisation is a matter of rewriting integers.
type BasicBlock struct {
	Statements []Statement
	Terminator Terminator
}

func NewBasicBlock(term Terminator, stmts ...Statement) BasicBlock {
	return BasicBlock{Statements: stmts, Terminator: term}
}

func (b BasicBlock) Equal(o BasicBlock) bool {
	if len(b.Statements) != len(o.Statements) {
		return false
	}
	for i := range b.Statements {
		if !b.Statements[i].Equal(o.Statements[i]) {
			return false
		}
	}
	return b.Terminator.Equal(o.Terminator)
}

func (b BasicBlock) Clone() BasicBlock {
	stmts := make([]Statement, len(b.Statements))
	for i, s := range b.Statements {
		stmts[i] = s.Clone()
	}
	return BasicBlock{Statements: stmts, Terminator: b.Terminator.Clone()}
}

// Function is the index-addressed MIR body of one item (spec.md §3/§4.3).
// Locals[0] is always the return slot; Blocks[0] is always the entry block.
// DropFlags holds the initial value of every drop flag referenced by
// SetDropFlag/LoadDropFlag/Drop statements in this function.
type Function struct {
	Locals    []types.TypeRef
	DropFlags []bool
	Blocks    []BasicBlock
}

func NewFunction(locals []types.TypeRef, dropFlags []bool, blocks []BasicBlock) Function {
	return Function{Locals: locals, DropFlags: dropFlags, Blocks: blocks}
}

// ReturnType is the type of Locals[0], the implicit return slot.
func (f Function) ReturnType() types.TypeRef { return f.Locals[0] }

func (f Function) Equal(o Function) bool {
	if len(f.Locals) != len(o.Locals) || len(f.DropFlags) != len(o.DropFlags) || len(f.Blocks) != len(o.Blocks) {
		return false
	}
	for i := range f.Locals {
		if !f.Locals[i].Equal(o.Locals[i]) {
			return false
		}
	}
	for i := range f.DropFlags {
		if f.DropFlags[i] != o.DropFlags[i] {
			return false
		}
	}
	for i := range f.Blocks {
		if !f.Blocks[i].Equal(o.Blocks[i]) {
			return false
		}
	}
	return true
}

// Clone performs a plain structural deep-clone with no substitution and no
// renumbering (spec.md §4.3). Monomorphisation's block/local/drop-flag
// renumbering lives in internal/mono, layered on top of this.
func (f Function) Clone() Function {
	locals := append([]types.TypeRef(nil), f.Locals...)
	flags := append([]bool(nil), f.DropFlags...)
	blocks := make([]BasicBlock, len(f.Blocks))
	for i, b := range f.Blocks {
		blocks[i] = b.Clone()
	}
	return Function{Locals: locals, DropFlags: flags, Blocks: blocks}
}
