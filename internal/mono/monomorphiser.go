// Package mono is monomorphisation and cloning (component C of spec.md
// §4.4): substituting generic parameter references for concrete types and
// constants, then renumbering a whole MIR function's blocks, locals, and
// drop flags through caller-supplied maps so the result can be spliced
// into a fresh function body.
//
// Grounded on original_source/src/hir_typeck/monomorph.hpp (the
// MonomorphState/Monomorphiser split this package's interface family
// mirrors) and the teacher's internal/mir/monomorphize.go.
package mono

import "github.com/malphas-lang/malphas-lang/internal/types"

// Monomorphiser resolves a GenericRef to a concrete substitution. Each
// concrete implementation below dispatches on GenericRef.Group, matching
// which parameter scope the reference names a slot in (spec.md §9: the
// group tag must never be normalised away).
type Monomorphiser interface {
	Type(ref types.GenericRef) (types.TypeRef, bool)
	Const(ref types.GenericRef) (types.ConstGeneric, bool)
}

// Identity substitutes nothing: every query misses, leaving the reference
// as a bare GenericRef. It is the Monomorphiser for work that stays fully
// generic (e.g. validating a function body before any call site has
// chosen concrete arguments).
type Identity struct{}

func (Identity) Type(types.GenericRef) (types.TypeRef, bool)      { return types.TypeRef{}, false }
func (Identity) Const(types.GenericRef) (types.ConstGeneric, bool) { return types.ConstGeneric{}, false }

// ImplMethodSelf is the common case when instantiating a method call: up
// to four independent parameter lists, one per GenericRef.Group, supplied
// by the impl block, the method item itself, the Self placeholder slot,
// and any higher-ranked binder in scope (spec.md §4.4's "4 slots").
type ImplMethodSelf struct {
	ImplTypes        []types.TypeRef
	ItemTypes        []types.TypeRef
	PlaceholderTypes []types.TypeRef
	HRBTypes         []types.TypeRef

	ImplConsts        []types.ConstGeneric
	ItemConsts        []types.ConstGeneric
	PlaceholderConsts []types.ConstGeneric
	HRBConsts         []types.ConstGeneric
}

func (m ImplMethodSelf) slots(g types.Group) ([]types.TypeRef, []types.ConstGeneric) {
	switch g {
	case types.GroupImpl:
		return m.ImplTypes, m.ImplConsts
	case types.GroupItem:
		return m.ItemTypes, m.ItemConsts
	case types.GroupPlaceholder:
		return m.PlaceholderTypes, m.PlaceholderConsts
	case types.GroupHRB:
		return m.HRBTypes, m.HRBConsts
	default:
		return nil, nil
	}
}

func (m ImplMethodSelf) Type(ref types.GenericRef) (types.TypeRef, bool) {
	ts, _ := m.slots(ref.Group)
	if ref.Index < 0 || ref.Index >= len(ts) {
		return types.TypeRef{}, false
	}
	return ts[ref.Index], true
}

func (m ImplMethodSelf) Const(ref types.GenericRef) (types.ConstGeneric, bool) {
	_, cs := m.slots(ref.Group)
	if ref.Index < 0 || ref.Index >= len(cs) {
		return types.ConstGeneric{}, false
	}
	return cs[ref.Index], true
}

// HRBOnly substitutes only GroupHRB references, leaving every other group
// untouched — used while instantiating inside a higher-ranked binder
// (`for<'a> Fn(&'a T)`) without disturbing the enclosing impl/item/
// placeholder substitution already applied around it.
type HRBOnly struct {
	Types  []types.TypeRef
	Consts []types.ConstGeneric
}

func (m HRBOnly) Type(ref types.GenericRef) (types.TypeRef, bool) {
	if ref.Group != types.GroupHRB || ref.Index < 0 || ref.Index >= len(m.Types) {
		return types.TypeRef{}, false
	}
	return m.Types[ref.Index], true
}

func (m HRBOnly) Const(ref types.GenericRef) (types.ConstGeneric, bool) {
	if ref.Group != types.GroupHRB || ref.Index < 0 || ref.Index >= len(m.Consts) {
		return types.ConstGeneric{}, false
	}
	return m.Consts[ref.Index], true
}

// SubstType applies m to every GenericRef found inside ty, recursively.
func SubstType(m Monomorphiser, ty types.TypeRef) types.TypeRef {
	switch ty.Tag {
	case types.TagGeneric:
		if sub, ok := m.Type(ty.Generic); ok {
			return sub
		}
		return ty
	case types.TagTuple:
		elems := make([]types.TypeRef, len(ty.Elems))
		for i, e := range ty.Elems {
			elems[i] = SubstType(m, e)
		}
		ty.Elems = elems
		return ty
	case types.TagSlice, types.TagBorrow, types.TagPointer:
		if ty.Inner != nil {
			inner := SubstType(m, *ty.Inner)
			ty.Inner = &inner
		}
		return ty
	case types.TagArray:
		if ty.Inner != nil {
			inner := SubstType(m, *ty.Inner)
			ty.Inner = &inner
		}
		if ty.Size.Ref != nil {
			if sub, ok := m.Const(*ty.Size.Ref); ok && sub.Kind == types.ConstInteger {
				ty.Size = types.KnownSize(sub.Value)
			}
		}
		return ty
	case types.TagFunction:
		args := make([]types.TypeRef, len(ty.FnArgs))
		for i, a := range ty.FnArgs {
			args[i] = SubstType(m, a)
		}
		ty.FnArgs = args
		if ty.FnRet != nil {
			ret := SubstType(m, *ty.FnRet)
			ty.FnRet = &ret
		}
		return ty
	case types.TagNominal:
		ty.Nominal = substPath(m, ty.Nominal)
		return ty
	default:
		return ty
	}
}

func substPath(m Monomorphiser, p types.Path) types.Path {
	p.GenericP = substGenericPath(m, p.GenericP)
	if p.Type != nil {
		t := SubstType(m, *p.Type)
		p.Type = &t
	}
	p.Params = substParams(m, p.Params)
	p.Trait = substGenericPath(m, p.Trait)
	p.ImplParams = substParams(m, p.ImplParams)
	return p
}

func substGenericPath(m Monomorphiser, gp types.GenericPath) types.GenericPath {
	gp.Params = substParams(m, gp.Params)
	return gp
}

func substParams(m Monomorphiser, pp types.PathParams) types.PathParams {
	types_ := make([]types.TypeRef, len(pp.Types))
	for i, t := range pp.Types {
		types_[i] = SubstType(m, t)
	}
	pp.Types = types_
	consts := make([]types.ConstGeneric, len(pp.Consts))
	for i, c := range pp.Consts {
		if c.Kind == types.ConstGenericParam {
			if sub, ok := m.Const(c.Ref); ok {
				consts[i] = sub
				continue
			}
		}
		consts[i] = c
	}
	pp.Consts = consts
	return pp
}
