// Package resolve is the trait resolver (component R of spec.md §5): a
// two-index query engine over an internal/hir.Crate answering "does this
// type implement this trait" and "what is the concrete form of this
// associated-type projection", with an anti-recursion stack so a cyclic
// bound (Self: Trait<Assoc = Self::Assoc>) degrades to "unknown" instead of
// looping forever.
//
// Grounded on original_source/src/resolve/common.cpp and
// original_source/src/hir_typeck/outer.cpp: the split between a cheap
// type-equality cache and a separate trait-bound cache mirrors
// TraitResolution's two lookup tables there.
package resolve

import (
	"github.com/malphas-lang/malphas-lang/internal/hir"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// TriState is the three-valued outcome of a type_implements query
// (spec.md §5): recursion that re-enters an in-progress query reports
// Unknown rather than guessing Yes or No.
type TriState uint8

const (
	Unknown TriState = iota
	Yes
	No
)

// Resolver answers trait and associated-type queries over a crate. Its
// construction takes the crate plus the two generic-parameter scopes in
// effect at the query site — the enclosing impl's and the enclosing item's
// (spec.md §4.2) — since prep_indexes() scans both for in-scope bounds. It
// is not safe for concurrent use: prep_indexes and the query methods
// mutate the same cache maps.
type Resolver struct {
	crate hir.Crate

	implGenerics types.GenericParams
	itemGenerics types.GenericParams

	// typeEq is the first prep_indexes() index (spec.md §4.2 "type-equality
	// index T -> U"): populated from TypeEquality bounds, from TraitBound
	// associated-type constraints (`I : Iterator<Item = u8>` inserts
	// "I as Iterator::Item" -> u8), and from associated-type bounds reached
	// by walking super-traits. Keyed by a rendered projection/type string
	// rather than a struct so map lookups stay O(1) without a custom Hash.
	typeEq map[string]types.TypeRef

	// boundIndex is populated alongside typeEq from every TraitBound in
	// scope: a plain `I : Trait` bound is a direct "yes" for
	// type_implements without needing to consult crate impls at all
	// (spec.md §4.2's bound index, consulted before crate impls).
	boundIndex map[string]bool

	// boundCache is the trait-bound query cache, keyed by (type, GenericPath)
	// (spec.md §5): once a query resolves, the verdict is cached here so a
	// repeated check on the same pair is O(1).
	boundCache map[string]TriState

	// inProgress is the anti-recursion stack: a query signature pushed here
	// while its own evaluation is still running. Re-entering it returns
	// Unknown instead of recursing (spec.md §5).
	inProgress map[string]bool
}

func New(crate hir.Crate, implGenerics, itemGenerics types.GenericParams) *Resolver {
	r := &Resolver{
		crate:        crate,
		implGenerics: implGenerics,
		itemGenerics: itemGenerics,
		typeEq:       make(map[string]types.TypeRef),
		boundIndex:   make(map[string]bool),
		boundCache:   make(map[string]TriState),
		inProgress:   make(map[string]bool),
	}
	r.PrepIndexes()
	return r
}

// PrepIndexes scans every in-scope bound — the impl's generics, then the
// item's — building the type-equality index and the bound index (spec.md
// §4.2). It is idempotent and cheap to call again after new bounds are
// registered on either GenericParams value in place.
func (r *Resolver) PrepIndexes() {
	r.indexGenericParams(r.implGenerics)
	r.indexGenericParams(r.itemGenerics)
}

func (r *Resolver) indexGenericParams(gp types.GenericParams) {
	for _, b := range gp.Bounds {
		switch b.Kind {
		case types.BoundTypeEquality:
			key := b.EqLeft.String()
			if n := b.EqLeft.Nominal; b.EqLeft.Tag == types.TagNominal && n.Kind == types.PathUfcsKnown {
				key = projKey(*n.Type, n.Trait.Path, n.Item.String())
			}
			r.typeEq[key] = b.EqRight
		case types.BoundTraitBound:
			r.indexTraitBound(b.TraitBoundType, b.Trait, make(map[string]bool))
		}
	}
}

// indexTraitBound records ty's direct bound-index entry and every
// associated-type constraint the bound carries, then walks the trait's own
// declared bounds for further constraints reachable via super-traits
// (spec.md §4.2 "every associated-type bound reachable by walking
// super-traits"). visited guards against a cyclic trait graph; the spec
// notes a real implementation bounds this by a precomputed all-parents
// list, which this resolver doesn't maintain, so a visited set stands in.
func (r *Resolver) indexTraitBound(ty types.TypeRef, trait types.TraitPath, visited map[string]bool) {
	r.boundIndex[boundKey(ty, trait.GenericPath())] = true
	for name, bound := range trait.AssocBounds {
		r.typeEq[projKey(ty, trait.Trait, name)] = bound
	}

	traitKey := trait.Trait.String()
	if visited[traitKey] {
		return
	}
	visited[traitKey] = true

	def, ok := r.crate.GetTraitByPath(trait.Trait)
	if !ok {
		return
	}
	for _, sb := range def.Generics.Bounds {
		if sb.Kind == types.BoundTraitBound {
			r.indexTraitBound(ty, sb.Trait, visited)
		}
	}
}

func boundKey(ty types.TypeRef, trait types.GenericPath) string {
	return ty.String() + " as " + trait.String()
}

// projKey renders the associated-type-projection index key "Type as
// Trait::Assoc", shared by PrepIndexes' writer and expandProjection's
// reader.
func projKey(ty types.TypeRef, trait types.SimplePath, assoc string) string {
	return ty.String() + " as " + trait.String() + "::" + assoc
}

// GetConstParamType resolves the declared type of a const generic
// parameter (spec.md §4.2 get_const_param_type), delegating to
// types.GenericParams since the declaration itself lives there.
func (r *Resolver) GetConstParamType(gp types.GenericParams, idx int) (types.TypeRef, bool) {
	return gp.ConstParamType(idx)
}
