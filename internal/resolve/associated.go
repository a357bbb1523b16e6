package resolve

import (
	"github.com/malphas-lang/malphas-lang/internal/diag"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// ExpandAssociatedTypes rewrites every `<Self as Trait>::Item`-shaped
// projection inside ty into its concrete binding, recursively, using the
// anti-recursion stack to break a cycle such as
// `impl Trait for Foo { type Item = <Foo as Trait>::Item; }` (spec.md §5).
// A projection that cannot be resolved — no matching impl, or a cycle —
// is left untouched and reported via the returned diagnostics.
func (r *Resolver) ExpandAssociatedTypes(ty types.TypeRef) (types.TypeRef, []diag.Diagnostic) {
	var diags []diag.Diagnostic
	out := r.expand(ty, &diags)
	return out, diags
}

func (r *Resolver) expand(ty types.TypeRef, diags *[]diag.Diagnostic) types.TypeRef {
	switch ty.Tag {
	case types.TagNominal:
		if ty.Nominal.Kind == types.PathUfcsKnown || ty.Nominal.Kind == types.PathUfcsUnknown {
			return r.expandProjection(ty, diags)
		}
		if len(ty.Nominal.GenericP.Params.Types) > 0 {
			params := ty.Nominal.GenericP.Params
			newTypes := make([]types.TypeRef, len(params.Types))
			for i, t := range params.Types {
				newTypes[i] = r.expand(t, diags)
			}
			params.Types = newTypes
			n := ty.Nominal
			n.GenericP.Params = params
			ty.Nominal = n
		}
		return ty
	case types.TagTuple:
		elems := make([]types.TypeRef, len(ty.Elems))
		for i, e := range ty.Elems {
			elems[i] = r.expand(e, diags)
		}
		ty.Elems = elems
		return ty
	case types.TagSlice, types.TagArray, types.TagBorrow, types.TagPointer:
		if ty.Inner != nil {
			inner := r.expand(*ty.Inner, diags)
			ty.Inner = &inner
		}
		return ty
	case types.TagFunction:
		args := make([]types.TypeRef, len(ty.FnArgs))
		for i, a := range ty.FnArgs {
			args[i] = r.expand(a, diags)
		}
		ty.FnArgs = args
		if ty.FnRet != nil {
			ret := r.expand(*ty.FnRet, diags)
			ty.FnRet = &ret
		}
		return ty
	default:
		return ty
	}
}

// expandProjection resolves one `<Type as Trait>::Item` node: it finds the
// impl of Trait for Type, looks up its binding for Item, and recursively
// expands the result (so a chain of projections fully grounds out).
func (r *Resolver) expandProjection(ty types.TypeRef, diags *[]diag.Diagnostic) types.TypeRef {
	p := ty.Nominal
	selfTy := *p.Type
	key := "proj:" + ty.String()
	if r.inProgress[key] {
		*diags = append(*diags, diag.New(diag.StageResolver, diag.SeverityError,
			diag.CodeResolverRecursive, "cyclic associated-type projection: "+ty.String(), diag.Span{}))
		return ty
	}
	r.inProgress[key] = true
	defer delete(r.inProgress, key)

	var traitPath types.SimplePath
	if p.Kind == types.PathUfcsKnown {
		traitPath = p.Trait.Path
	} else {
		traitPath = p.Trait.Path // PathUfcsUnknown: trait is unresolved; best effort use whatever is set
	}

	// The bound index covers projections over a generic parameter (spec.md
	// §8 scenario 6: `I : Iterator<Item = u8>` on a generic param `I` has no
	// impl at all for crate.FindTraitImpls to find), so it is consulted
	// before falling back to crate impls.
	if bound, ok := r.typeEq[projKey(selfTy, traitPath, p.Item.String())]; ok {
		return r.expand(bound, diags)
	}

	impls := r.crate.FindTraitImpls(traitPath, selfTy)
	for _, impl := range impls {
		if !impl.Type.IsGround() || types.Compare(impl.Type, selfTy) == 0 {
			if bound, ok := impl.AssocTypes[p.Item.String()]; ok {
				return r.expand(bound, diags)
			}
		}
	}

	*diags = append(*diags, diag.New(diag.StageResolver, diag.SeverityError,
		diag.CodeResolverUnknownAssocType, "no impl provides associated type "+p.Item.String()+" for "+selfTy.String(), diag.Span{}))
	return ty
}
