// Generalised from the teacher's internal/types/generics.go (TypeParam,
// Substitute, Unify over a name-keyed teacher type system) into the mrustc
// GenericParams/Bound model of spec.md §3: an ordered sequence of type and
// const-generic parameters plus an ordered sequence of bounds, addressed by
// (group, index) rather than by name.
package types

// TypeParamDef is one type parameter slot: a name (for diagnostics only) and
// an optional default.
type TypeParamDef struct {
	Name    string
	Default *TypeRef
}

// ConstParamDef is one const-generic parameter slot.
type ConstParamDef struct {
	Name string
	Type TypeRef
}

// BoundKind discriminates the four bound shapes of spec.md §3.
type BoundKind uint8

const (
	BoundLifetime BoundKind = iota
	BoundTypeLifetime
	BoundTraitBound
	BoundTypeEquality
)

// Bound is one entry of GenericParams.Bounds (spec.md §3):
//
//   - Lifetime(a outlives b)
//   - TypeLifetime(T outlives a)
//   - TraitBound(T : Trait<args, [AssocType = ...]>)
//   - TypeEquality(T = U)
type Bound struct {
	Kind BoundKind

	// BoundLifetime
	LifetimeA LifetimeRef
	LifetimeB LifetimeRef

	// BoundTypeLifetime
	Type     TypeRef
	Lifetime LifetimeRef

	// BoundTraitBound
	TraitBoundType TypeRef
	Trait          TraitPath

	// BoundTypeEquality
	EqLeft  TypeRef
	EqRight TypeRef
}

func NewLifetimeBound(a, b LifetimeRef) Bound {
	return Bound{Kind: BoundLifetime, LifetimeA: a, LifetimeB: b}
}

func NewTypeLifetimeBound(t TypeRef, l LifetimeRef) Bound {
	return Bound{Kind: BoundTypeLifetime, Type: t, Lifetime: l}
}

func NewTraitBound(t TypeRef, trait TraitPath) Bound {
	return Bound{Kind: BoundTraitBound, TraitBoundType: t, Trait: trait}
}

func NewTypeEqualityBound(left, right TypeRef) Bound {
	return Bound{Kind: BoundTypeEquality, EqLeft: left, EqRight: right}
}

// GenericParams is an ordered sequence of type parameters and const-generic
// parameters plus the bounds that constrain them (spec.md §3).
type GenericParams struct {
	Types  []TypeParamDef
	Consts []ConstParamDef
	Bounds []Bound
}

// ConstParamType returns the declared type of the const-generic parameter at
// index idx, per spec.md §4.2's get_const_param_type contract (the group
// dispatch to impl-vs-item param lists happens in internal/resolve, which
// holds both an impl-scope and an item-scope GenericParams).
func (g *GenericParams) ConstParamType(idx int) (TypeRef, bool) {
	if idx < 0 || idx >= len(g.Consts) {
		return TypeRef{}, false
	}
	return g.Consts[idx].Type, true
}
