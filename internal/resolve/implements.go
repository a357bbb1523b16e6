package resolve

import (
	"github.com/malphas-lang/malphas-lang/internal/hir"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// TypeImplements reports whether ty implements the trait named by trait's
// path (spec.md §5). Candidate impls are matched on their self type only;
// trait's own parameters are not compared against the impl. A cyclic query
// (one that re-enters while its own evaluation is in flight) returns Unknown.
func (r *Resolver) TypeImplements(ty types.TypeRef, trait types.GenericPath) TriState {
	key := boundKey(ty, trait)
	if v, ok := r.boundCache[key]; ok {
		return v
	}
	if r.inProgress[key] {
		return Unknown
	}
	r.inProgress[key] = true
	defer delete(r.inProgress, key)

	verdict := r.computeImplements(ty, trait)
	if verdict != Unknown {
		r.boundCache[key] = verdict
	}
	return verdict
}

// computeImplements consults, in order, the bound index (an in-scope
// `T : Trait` constraint), crate impls, then built-in traits (spec.md
// §4.2: "consults the bound index first, then crate impls ..., then
// built-ins (Copy, Sized, Fn family, etc.)").
func (r *Resolver) computeImplements(ty types.TypeRef, trait types.GenericPath) TriState {
	if r.boundIndex[boundKey(ty, trait)] {
		return Yes
	}
	for _, impl := range r.crate.FindTraitImpls(trait.Path, ty) {
		if r.implMatches(impl, ty, trait) {
			return Yes
		}
	}
	if builtinImplements(ty, trait) {
		return Yes
	}
	return No
}

// implMatches checks a single candidate impl's self type against ty. The
// impl's own where-bounds are not checked, so a candidate is accepted or
// rejected without re-entering TypeImplements.
func (r *Resolver) implMatches(impl *hir.ImplDef, ty types.TypeRef, trait types.GenericPath) bool {
	if impl.Type.IsGround() {
		return types.Compare(impl.Type, ty) == 0
	}
	// A generic impl's self type (e.g. impl<T> Trait for Wrapper<T>) is
	// only ground after substitution; internal/mono performs that
	// substitution when it actually instantiates a call. At resolve time,
	// a structural tag match (same TypeRef.Tag, same nominal path if any)
	// is the most this package claims without a unifier of its own.
	return sameShape(impl.Type, ty)
}

func sameShape(a, b types.TypeRef) bool {
	if a.Tag != b.Tag {
		return false
	}
	if a.Tag == types.TagNominal {
		return a.Nominal.GenericP.Path.Equal(b.Nominal.GenericP.Path)
	}
	return true
}
