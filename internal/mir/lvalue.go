// Package mir is the mid-level IR data model (component M of spec.md §4.3):
// a control-flow-graph of basic blocks carrying typed statements and
// terminators, with explicit drop-flag tracking.
//
// Every IR tree here is value-shaped with no back-pointers: blocks, locals,
// and drop-flags are referenced by plain integer index into the enclosing
// Function, never by pointer (spec.md §3 Ownership). That is what lets
// internal/mono's Cloner renumber a whole function through caller-supplied
// maps without any fix-up pass, and what lets a sub-tree be deep-cloned on
// its own.
package mir

import "github.com/malphas-lang/malphas-lang/internal/types"

// StorageKind discriminates the root of an LValue (spec.md §3).
type StorageKind uint8

const (
	StorageReturn StorageKind = iota
	StorageArgument
	StorageLocal
	StorageStatic
)

// Storage is the root of an LValue: the return slot, an argument slot, a
// local slot, or a named static (spec.md §3). Block 0 is the function's
// entry block and local 0 is always the return slot (spec.md §3 MIR
// Function).
type Storage struct {
	Kind  StorageKind
	Index int              // StorageArgument, StorageLocal
	Path  types.SimplePath // StorageStatic
}

func Return() Storage                { return Storage{Kind: StorageReturn} }
func Argument(idx int) Storage       { return Storage{Kind: StorageArgument, Index: idx} }
func LocalSlot(idx int) Storage      { return Storage{Kind: StorageLocal, Index: idx} }
func Static(p types.SimplePath) Storage { return Storage{Kind: StorageStatic, Path: p} }

func (s Storage) Equal(o Storage) bool {
	if s.Kind != o.Kind {
		return false
	}
	switch s.Kind {
	case StorageArgument, StorageLocal:
		return s.Index == o.Index
	case StorageStatic:
		return s.Path.Equal(o.Path)
	default:
		return true
	}
}

// WrapperKind discriminates one link of an LValue's wrapper chain
// (spec.md §3).
type WrapperKind uint8

const (
	WrapField WrapperKind = iota
	WrapDeref
	WrapIndex
	WrapDowncast
)

// Wrapper is one step applied to an LValue's storage, left to right
// (spec.md §3): Field(idx), Deref, Index(local_idx), Downcast(variant_idx).
type Wrapper struct {
	Kind  WrapperKind
	Index int // WrapField (field index), WrapIndex (local index), WrapDowncast (variant index)
}

func Field(idx int) Wrapper    { return Wrapper{Kind: WrapField, Index: idx} }
func Deref() Wrapper           { return Wrapper{Kind: WrapDeref} }
func Index(localIdx int) Wrapper { return Wrapper{Kind: WrapIndex, Index: localIdx} }
func Downcast(variant int) Wrapper { return Wrapper{Kind: WrapDowncast, Index: variant} }

func (w Wrapper) Equal(o Wrapper) bool { return w.Kind == o.Kind && w.Index == o.Index }

// LValue is (storage, wrappers): a place that can be read, written, or
// borrowed (spec.md §3).
type LValue struct {
	Storage  Storage
	Wrappers []Wrapper
}

func NewLValue(s Storage, wrappers ...Wrapper) LValue {
	return LValue{Storage: s, Wrappers: wrappers}
}

func (l LValue) Equal(o LValue) bool {
	if !l.Storage.Equal(o.Storage) || len(l.Wrappers) != len(o.Wrappers) {
		return false
	}
	for i := range l.Wrappers {
		if !l.Wrappers[i].Equal(o.Wrappers[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy; since LValue holds only value-typed fields and
// a plain Wrapper slice, this is a direct copy with a fresh backing array.
func (l LValue) Clone() LValue {
	w := make([]Wrapper, len(l.Wrappers))
	copy(w, l.Wrappers)
	return LValue{Storage: l.Storage, Wrappers: w}
}

// IsWritable reports whether l may appear as an Assign destination
// (spec.md §4.3: "dst is a writable lvalue (storage is Return, Argument, or
// Local; never Static - static writes are forbidden at this level)").
func (l LValue) IsWritable() bool {
	return l.Storage.Kind == StorageReturn || l.Storage.Kind == StorageArgument || l.Storage.Kind == StorageLocal
}
