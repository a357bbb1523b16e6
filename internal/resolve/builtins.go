package resolve

import "github.com/malphas-lang/malphas-lang/internal/types"

// builtinTraitName extracts the bare trait name a GenericPath names,
// ignoring crate: lang items are identified by name alone (spec.md §6
// get_lang_item_path_opt: "Copy", "Clone", "Drop", "Sized", "Fn"/"FnMut"/
// "FnOnce", ...), not by which crate declares them.
func builtinTraitName(p types.SimplePath) string {
	if len(p.Components) == 0 {
		return ""
	}
	return p.Components[len(p.Components)-1].String()
}

// builtinImplements is the third tier of type_implements (spec.md §4.2:
// "then built-ins (Copy, Sized, Fn family, etc.)"), consulted only after
// the bound index and crate impls have both missed.
func builtinImplements(ty types.TypeRef, trait types.GenericPath) bool {
	switch builtinTraitName(trait.Path) {
	case "Copy":
		return isCopy(ty)
	case "Sized":
		return isSized(ty)
	case "Fn", "FnMut", "FnOnce":
		return ty.Tag == types.TagFunction
	default:
		return false
	}
}

// isCopy approximates Rust's Copy: primitives other than unsized str,
// shared borrows, raw pointers, and tuples/arrays of Copy types.
func isCopy(ty types.TypeRef) bool {
	switch ty.Tag {
	case types.TagPrimitive:
		return ty.Primitive != types.Str
	case types.TagBorrow:
		return ty.Borrow == types.Shared
	case types.TagPointer:
		return true
	case types.TagTuple:
		for _, e := range ty.Elems {
			if !isCopy(e) {
				return false
			}
		}
		return true
	case types.TagArray:
		return ty.Inner != nil && isCopy(*ty.Inner)
	default:
		return false
	}
}

// isSized approximates Rust's Sized: everything except slices, the str
// primitive, and trait objects (the unsized families).
func isSized(ty types.TypeRef) bool {
	switch ty.Tag {
	case types.TagSlice, types.TagTraitObject:
		return false
	case types.TagPrimitive:
		return ty.Primitive != types.Str
	default:
		return true
	}
}
