// Package types is the vocabulary layer (component T of spec.md §4.1): the
// TypeRef/Path/PathParams/GenericParams data model all other components
// speak, plus the structural comparison used to key the resolver's and
// cloner's maps.
//
// No inference variables live here: type inference is an external concern
// upstream of this repository (spec.md §4.1). Every TypeRef is either
// ground or carries only generic references/erased placeholders whose
// resolution is someone else's job (the Monomorphiser, in internal/mono).
package types

import (
	"strings"

	"github.com/malphas-lang/malphas-lang/internal/ident"
)

// PrimitiveKind enumerates the fixed set of primitive types (spec.md §3).
type PrimitiveKind uint8

const (
	U8 PrimitiveKind = iota
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	U128
	I128
	Usize
	Isize
	F32
	F64
	Bool
	Char
	Str
	Never
)

var primitiveNames = map[PrimitiveKind]string{
	U8: "u8", I8: "i8", U16: "u16", I16: "i16", U32: "u32", I32: "i32",
	U64: "u64", I64: "i64", U128: "u128", I128: "i128",
	Usize: "usize", Isize: "isize", F32: "f32", F64: "f64",
	Bool: "bool", Char: "char", Str: "str", Never: "!",
}

// IsInteger reports whether k is one of the signed/unsigned integer kinds.
func (k PrimitiveKind) IsInteger() bool {
	switch k {
	case U8, I8, U16, I16, U32, I32, U64, I64, U128, I128, Usize, Isize:
		return true
	}
	return false
}

// IsUnsigned reports whether k is one of the unsigned integer kinds. Used by
// internal/mono's DecodeEvaluated to pick unsigned decoding.
func (k PrimitiveKind) IsUnsigned() bool {
	switch k {
	case U8, U16, U32, U64, U128, Usize:
		return true
	}
	return false
}

func (k PrimitiveKind) String() string { return primitiveNames[k] }

// BorrowKind distinguishes shared/unique/owned borrows and pointers
// (spec.md §3: "borrow (shared/unique/owned) of T; raw pointer (same
// variants) of T").
type BorrowKind uint8

const (
	Shared BorrowKind = iota
	Unique
	Owned
)

func (b BorrowKind) String() string {
	switch b {
	case Shared:
		return "shared"
	case Unique:
		return "unique"
	case Owned:
		return "owned"
	default:
		return "?"
	}
}

// ArraySize is the size of an Array type: a concrete number, a generic
// reference (a const generic), or an unevaluated expression (spec.md §3).
type ArraySize struct {
	Known     *uint64
	Ref       *GenericRef
	Unevaled  bool
	UnevalKey string // opaque key for the unevaluated expression, compared by value
}

func KnownSize(n uint64) ArraySize { return ArraySize{Known: &n} }
func RefSize(g GenericRef) ArraySize {
	gg := g
	return ArraySize{Ref: &gg}
}

func (a ArraySize) String() string {
	switch {
	case a.Known != nil:
		return uitoa(*a.Known)
	case a.Ref != nil:
		return a.Ref.String()
	default:
		return "{" + a.UnevalKey + "}"
	}
}

func (a ArraySize) Equal(b ArraySize) bool {
	if (a.Known == nil) != (b.Known == nil) {
		return false
	}
	if a.Known != nil {
		return *a.Known == *b.Known
	}
	if (a.Ref == nil) != (b.Ref == nil) {
		return false
	}
	if a.Ref != nil {
		return *a.Ref == *b.Ref
	}
	return a.Unevaled == b.Unevaled && a.UnevalKey == b.UnevalKey
}

// TypeTag discriminates the TypeRef sum (spec.md §3).
type TypeTag uint8

const (
	TagPrimitive TypeTag = iota
	TagGeneric
	TagTuple
	TagSlice
	TagArray
	TagBorrow
	TagPointer
	TagFunction
	TagTraitObject
	TagNominal
	TagOpaque
	TagClosure
)

// FnAbi names a function pointer's calling convention. ABIRust is the
// default; anything else must be spelled out when mangled (spec.md §4.6).
type FnAbi string

const ABIRust FnAbi = "Rust"

// TraitPath is a (trait path, path params, associated-type bindings) tuple —
// the "GenericPath" used wherever a trait bound is instantiated, plus the
// `[AssocType = ...]` bindings a TraitBound or trait-object principal can
// carry (spec.md §3 TraitBound, §4.2 associated-type bindings).
type TraitPath struct {
	Trait       SimplePath
	Params      PathParams
	AssocBounds map[string]TypeRef // associated type name -> bound type, sorted by key when iterated
}

func (t TraitPath) GenericPath() GenericPath { return GenericPath{Path: t.Trait, Params: t.Params} }

func (t TraitPath) String() string {
	var sb strings.Builder
	sb.WriteString(t.Trait.String())
	sb.WriteString(t.Params.String())
	if len(t.AssocBounds) > 0 {
		sb.WriteString("<")
		first := true
		for _, k := range sortedKeys(t.AssocBounds) {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(k)
			sb.WriteString(" = ")
			sb.WriteString(t.AssocBounds[k].String())
		}
		sb.WriteString(">")
	}
	return sb.String()
}

func sortedKeys(m map[string]TypeRef) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// insertion sort: these maps are small (associated-type bounds per trait)
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// TypeRef is a tagged sum over every kind of type the core manipulates
// (spec.md §3). It is an immutable value type: cloning a TypeRef never
// requires fix-up, since its only cross-references are Paths (by value) and
// GenericRefs (plain (group,index) pairs) — never pointers into a sibling
// tree (spec.md §3 Ownership).
type TypeRef struct {
	Tag TypeTag

	Primitive PrimitiveKind // TagPrimitive
	Generic   GenericRef    // TagGeneric

	Elems []TypeRef // TagTuple

	Inner *TypeRef // TagSlice, TagBorrow (wrapped), TagPointer (wrapped)
	Size  ArraySize // TagArray

	Borrow  BorrowKind // TagBorrow, TagPointer
	Pointer BorrowKind // legacy alias kept distinct for raw-pointer builders; same BorrowKind space

	FnAbi      FnAbi     // TagFunction
	FnArgs     []TypeRef // TagFunction
	FnRet      *TypeRef  // TagFunction
	FnIsUnsafe bool      // TagFunction

	TraitObjPrincipal *TraitPath  // TagTraitObject
	TraitObjMarkers   []SimplePath// TagTraitObject (marker traits carry no params by convention here)

	Nominal Path // TagNominal

	OpaqueOrigin Path // TagOpaque: origin path of an erased-type (impl Trait) placeholder

	ClosureOrigin Path // TagClosure: opaque closure/generator, identified by origin path only
	ClosureIsGen  bool
}

// --- constructors (spec.md §4.1) ---

func NewPrimitive(k PrimitiveKind) TypeRef { return TypeRef{Tag: TagPrimitive, Primitive: k} }
func NewGenericRef(g GenericRef) TypeRef   { return TypeRef{Tag: TagGeneric, Generic: g} }

func NewUnit() TypeRef { return TypeRef{Tag: TagTuple, Elems: nil} }

func NewTuple(elems ...TypeRef) TypeRef { return TypeRef{Tag: TagTuple, Elems: elems} }

func NewSlice(inner TypeRef) TypeRef { return TypeRef{Tag: TagSlice, Inner: &inner} }

func NewArray(inner TypeRef, size ArraySize) TypeRef {
	return TypeRef{Tag: TagArray, Inner: &inner, Size: size}
}

func NewBorrow(kind BorrowKind, inner TypeRef) TypeRef {
	return TypeRef{Tag: TagBorrow, Borrow: kind, Inner: &inner}
}

func NewPointer(kind BorrowKind, inner TypeRef) TypeRef {
	return TypeRef{Tag: TagPointer, Pointer: kind, Inner: &inner}
}

func NewFunction(abi FnAbi, args []TypeRef, ret TypeRef, isUnsafe bool) TypeRef {
	return TypeRef{Tag: TagFunction, FnAbi: abi, FnArgs: args, FnRet: &ret, FnIsUnsafe: isUnsafe}
}

func NewTraitObject(principal TraitPath, markers []SimplePath) TypeRef {
	p := principal
	return TypeRef{Tag: TagTraitObject, TraitObjPrincipal: &p, TraitObjMarkers: markers}
}

func NewPath(p Path) TypeRef { return TypeRef{Tag: TagNominal, Nominal: p} }

func NewOpaque(origin Path) TypeRef { return TypeRef{Tag: TagOpaque, OpaqueOrigin: origin} }

func NewClosure(origin Path, isGenerator bool) TypeRef {
	return TypeRef{Tag: TagClosure, ClosureOrigin: origin, ClosureIsGen: isGenerator}
}

// IsGround reports whether ty contains no generic references and no erased
// placeholders (spec.md §3 invariants).
func (ty TypeRef) IsGround() bool {
	switch ty.Tag {
	case TagGeneric, TagOpaque, TagClosure:
		return false
	case TagPrimitive:
		return true
	case TagTuple:
		for _, e := range ty.Elems {
			if !e.IsGround() {
				return false
			}
		}
		return true
	case TagSlice, TagBorrow, TagPointer:
		return ty.Inner.IsGround()
	case TagArray:
		if ty.Size.Ref != nil || ty.Size.Unevaled {
			return false
		}
		return ty.Inner.IsGround()
	case TagFunction:
		for _, a := range ty.FnArgs {
			if !a.IsGround() {
				return false
			}
		}
		return ty.FnRet.IsGround()
	case TagTraitObject:
		if !ty.Nominal.isGroundGenericPath(ty.TraitObjPrincipal.GenericPath()) {
			return false
		}
		for _, b := range ty.TraitObjPrincipal.AssocBounds {
			if !b.IsGround() {
				return false
			}
		}
		return true
	case TagNominal:
		return ty.Nominal.IsGround()
	default:
		return false
	}
}

func (p Path) isGroundGenericPath(gp GenericPath) bool {
	for _, t := range gp.Params.Types {
		if !t.IsGround() {
			return false
		}
	}
	return true
}

func (ty TypeRef) String() string {
	switch ty.Tag {
	case TagPrimitive:
		return ty.Primitive.String()
	case TagGeneric:
		return ty.Generic.String()
	case TagTuple:
		if len(ty.Elems) == 0 {
			return "()"
		}
		parts := make([]string, len(ty.Elems))
		for i, e := range ty.Elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case TagSlice:
		return "[" + ty.Inner.String() + "]"
	case TagArray:
		return "[" + ty.Inner.String() + "; " + ty.Size.String() + "]"
	case TagBorrow:
		return "&" + borrowSigil(ty.Borrow) + ty.Inner.String()
	case TagPointer:
		return "*" + borrowSigil(ty.Pointer) + ty.Inner.String()
	case TagFunction:
		parts := make([]string, len(ty.FnArgs))
		for i, a := range ty.FnArgs {
			parts[i] = a.String()
		}
		prefix := "fn"
		if ty.FnIsUnsafe {
			prefix = "unsafe fn"
		}
		return prefix + "(" + strings.Join(parts, ", ") + ") -> " + ty.FnRet.String()
	case TagTraitObject:
		s := "dyn " + ty.TraitObjPrincipal.String()
		for _, m := range ty.TraitObjMarkers {
			s += " + " + m.String()
		}
		return s
	case TagNominal:
		return ty.Nominal.String()
	case TagOpaque:
		return "impl@" + ty.OpaqueOrigin.String()
	case TagClosure:
		if ty.ClosureIsGen {
			return "generator@" + ty.ClosureOrigin.String()
		}
		return "closure@" + ty.ClosureOrigin.String()
	default:
		return "<?type>"
	}
}

func borrowSigil(k BorrowKind) string {
	switch k {
	case Shared:
		return ""
	case Unique:
		return "mut "
	case Owned:
		return "move "
	default:
		return ""
	}
}

func uitoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// interning helper re-exported for callers that build paths inline.
func Sym(s string) ident.Symbol { return ident.Intern(s) }
