package types

import (
	"strings"

	"github.com/malphas-lang/malphas-lang/internal/ident"
)

// CrateBuiltins is the reserved crate-name literal marking compiler-provided
// items (spec.md §3).
const CrateBuiltins = "#builtins"

// SimplePath is (crate_name, [component, ...]) (spec.md §3). An empty crate
// name means "current crate".
type SimplePath struct {
	Crate      ident.Symbol
	Components []ident.Symbol
}

func NewSimplePath(crate string, components ...string) SimplePath {
	syms := make([]ident.Symbol, len(components))
	for i, c := range components {
		syms[i] = ident.Intern(c)
	}
	return SimplePath{Crate: ident.Intern(crate), Components: syms}
}

func (p SimplePath) String() string {
	var sb strings.Builder
	if p.Crate != ident.Empty {
		sb.WriteString("::")
		sb.WriteString(p.Crate.String())
	}
	for _, c := range p.Components {
		sb.WriteString("::")
		sb.WriteString(c.String())
	}
	return sb.String()
}

func (p SimplePath) Equal(o SimplePath) bool {
	if p.Crate != o.Crate || len(p.Components) != len(o.Components) {
		return false
	}
	for i := range p.Components {
		if p.Components[i] != o.Components[i] {
			return false
		}
	}
	return true
}

// Less gives SimplePath a total, build-stable order (lexicographic on crate
// then components), used as a map/cache key by the resolver (spec.md §4.1
// "Equality contract").
func (p SimplePath) Less(o SimplePath) bool {
	if p.Crate != o.Crate {
		return p.Crate.Less(o.Crate)
	}
	for i := 0; i < len(p.Components) && i < len(o.Components); i++ {
		if p.Components[i] != o.Components[i] {
			return p.Components[i].Less(o.Components[i])
		}
	}
	return len(p.Components) < len(o.Components)
}

// PathParams are the positional type/const/lifetime arguments applied at a
// use site (spec.md §3).
type PathParams struct {
	Types     []TypeRef
	Consts    []ConstGeneric
	Lifetimes []LifetimeRef
}

// MTypes, MValues, MLifetimes give positional indexing, matching the
// PathParams::m_types/m_values/m_lifetimes accessors of spec.md §4.1.
func (p PathParams) MTypes() []TypeRef         { return p.Types }
func (p PathParams) MValues() []ConstGeneric   { return p.Consts }
func (p PathParams) MLifetimes() []LifetimeRef { return p.Lifetimes }

func (p PathParams) String() string {
	if len(p.Types) == 0 && len(p.Consts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.Types)+len(p.Consts))
	for _, t := range p.Types {
		parts = append(parts, t.String())
	}
	for _, c := range p.Consts {
		parts = append(parts, c.String())
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func (p PathParams) Equal(o PathParams) bool {
	if len(p.Types) != len(o.Types) || len(p.Consts) != len(o.Consts) || len(p.Lifetimes) != len(o.Lifetimes) {
		return false
	}
	for i := range p.Types {
		if !p.Types[i].Equal(o.Types[i]) {
			return false
		}
	}
	for i := range p.Consts {
		if !p.Consts[i].Equal(o.Consts[i]) {
			return false
		}
	}
	return true
}

// GenericPath is a SimplePath plus its use-site PathParams: <SimplePath>
// <PathParams> (spec.md §3, §4.6).
type GenericPath struct {
	Path   SimplePath
	Params PathParams
}

func (g GenericPath) String() string { return g.Path.String() + g.Params.String() }

func (g GenericPath) Equal(o GenericPath) bool {
	return g.Path.Equal(o.Path) && g.Params.Equal(o.Params)
}

// PathKind discriminates the Path sum (spec.md §3).
type PathKind uint8

const (
	PathGeneric PathKind = iota
	PathUfcsInherent
	PathUfcsKnown
	PathUfcsUnknown
)

// Path is one of Generic / UfcsInherent / UfcsKnown / UfcsUnknown
// (spec.md §3). UfcsUnknown must never survive past the resolver — R's job
// is precisely to turn every UfcsUnknown into a UfcsKnown or UfcsInherent.
type Path struct {
	Kind PathKind

	// PathGeneric
	GenericP GenericPath

	// PathUfcsInherent / PathUfcsKnown / PathUfcsUnknown
	Type       *TypeRef
	Item       ident.Symbol
	Params     PathParams
	Trait      GenericPath // PathUfcsKnown only
	ImplParams PathParams  // PathUfcsInherent only: the impl block's own generics
}

func NewGenericPathItem(sp SimplePath, pp PathParams) Path {
	return Path{Kind: PathGeneric, GenericP: GenericPath{Path: sp, Params: pp}}
}

func NewUfcsInherent(ty TypeRef, item string, pp, implParams PathParams) Path {
	return Path{Kind: PathUfcsInherent, Type: &ty, Item: ident.Intern(item), Params: pp, ImplParams: implParams}
}

func NewUfcsKnown(ty TypeRef, trait GenericPath, item string, pp PathParams) Path {
	return Path{Kind: PathUfcsKnown, Type: &ty, Trait: trait, Item: ident.Intern(item), Params: pp}
}

func NewUfcsUnknown(ty TypeRef, item string, pp PathParams) Path {
	return Path{Kind: PathUfcsUnknown, Type: &ty, Item: ident.Intern(item), Params: pp}
}

func (p Path) String() string {
	switch p.Kind {
	case PathGeneric:
		return p.GenericP.String()
	case PathUfcsInherent:
		return "<" + p.Type.String() + ">::" + p.Item.String() + p.Params.String()
	case PathUfcsKnown:
		return "<" + p.Type.String() + " as " + p.Trait.String() + ">::" + p.Item.String() + p.Params.String()
	case PathUfcsUnknown:
		return "<" + p.Type.String() + "::" + p.Item.String() + p.Params.String() + ">"
	default:
		return "<?path>"
	}
}

func (p Path) Equal(o Path) bool {
	if p.Kind != o.Kind {
		return false
	}
	switch p.Kind {
	case PathGeneric:
		return p.GenericP.Equal(o.GenericP)
	case PathUfcsInherent:
		return p.Type.Equal(*o.Type) && p.Item == o.Item && p.Params.Equal(o.Params) && p.ImplParams.Equal(o.ImplParams)
	case PathUfcsKnown:
		return p.Type.Equal(*o.Type) && p.Trait.Equal(o.Trait) && p.Item == o.Item && p.Params.Equal(o.Params)
	case PathUfcsUnknown:
		return p.Type.Equal(*o.Type) && p.Item == o.Item && p.Params.Equal(o.Params)
	}
	return false
}

// IsGround reports whether the path's type/params (where present) are all
// ground. A PathGeneric is ground iff its params are.
func (p Path) IsGround() bool {
	switch p.Kind {
	case PathGeneric:
		for _, t := range p.GenericP.Params.Types {
			if !t.IsGround() {
				return false
			}
		}
		return true
	case PathUfcsInherent, PathUfcsKnown, PathUfcsUnknown:
		if !p.Type.IsGround() {
			return false
		}
		for _, t := range p.Params.Types {
			if !t.IsGround() {
				return false
			}
		}
		return true
	}
	return false
}

// Equal on TypeRef: structural equality after interning, per spec.md §4.1's
// equality contract. Delegates to the total-order comparator below so the
// two are never allowed to disagree.
func (a TypeRef) Equal(b TypeRef) bool { return Compare(a, b) == 0 }

func (a ConstGeneric) Equal(b ConstGeneric) bool { return compareConstGeneric(a, b) == 0 }
