package hir

import "github.com/malphas-lang/malphas-lang/internal/types"

// Crate is the read-only query surface internal/resolve and internal/mono
// consult (spec.md §6). Its methods are deliberately narrow lookups rather
// than bulk iteration, matching how mrustc's HIR::Crate is used from the
// type-checker and trans passes in original_source/src/hir/.
type Crate interface {
	GetTraitByPath(p types.SimplePath) (*TraitDef, bool)
	GetTypeItemByPath(p types.SimplePath) (*TypeItem, bool)
	GetValItemByPath(p types.SimplePath) (*ValItem, bool)
	GetMacroItemByPath(p types.SimplePath) (*MacroItem, bool)

	// FindTraitImpls returns every impl of trait for a type whose generic
	// parameters unify with ty (spec.md §5: the resolver narrows this set
	// further via its cached trait-bound index).
	FindTraitImpls(trait types.SimplePath, ty types.TypeRef) []*ImplDef

	// GetLangItemPathOpt resolves a lang-item name (e.g. "owned_box",
	// "deref") to the path of the item providing it, if the crate graph
	// defines one.
	GetLangItemPathOpt(name string) (types.SimplePath, bool)

	// ExternCrates lists every crate this one depends on, by name.
	ExternCrates() []string

	GetModByPath(p types.SimplePath) (*Module, bool)
}

// MemCrate is an in-memory Crate built directly by tests: there is no
// source-lowering path in this
// module, so every Crate instance is assembled this way (spec.md §1
// Non-goals: parsing/lowering is out of scope).
type MemCrate struct {
	Name string

	Traits     map[string]*TraitDef
	TypeItems  map[string]*TypeItem
	ValItems   map[string]*ValItem
	MacroItems map[string]*MacroItem
	Mods       map[string]*Module
	LangItems  map[string]types.SimplePath
	Extern     []string

	// Impls is not path-indexed: FindTraitImpls does a linear scan, same as
	// resolve's un-cached fallback before prep_indexes() builds its own
	// lookup structures on top (spec.md §5).
	Impls []*ImplDef
}

func NewMemCrate(name string) *MemCrate {
	return &MemCrate{
		Name:       name,
		Traits:     make(map[string]*TraitDef),
		TypeItems:  make(map[string]*TypeItem),
		ValItems:   make(map[string]*ValItem),
		MacroItems: make(map[string]*MacroItem),
		Mods:       make(map[string]*Module),
		LangItems:  make(map[string]types.SimplePath),
	}
}

func (c *MemCrate) AddTrait(t *TraitDef)   { c.Traits[t.Path.String()] = t }
func (c *MemCrate) AddTypeItem(t *TypeItem) { c.TypeItems[t.Path.String()] = t }
func (c *MemCrate) AddValItem(v *ValItem)  { c.ValItems[v.Path.String()] = v }
func (c *MemCrate) AddImpl(i *ImplDef)     { c.Impls = append(c.Impls, i) }
func (c *MemCrate) AddMod(m *Module)       { c.Mods[m.Path.String()] = m }
func (c *MemCrate) SetLangItem(name string, p types.SimplePath) { c.LangItems[name] = p }

func (c *MemCrate) GetTraitByPath(p types.SimplePath) (*TraitDef, bool) {
	t, ok := c.Traits[p.String()]
	return t, ok
}

func (c *MemCrate) GetTypeItemByPath(p types.SimplePath) (*TypeItem, bool) {
	t, ok := c.TypeItems[p.String()]
	return t, ok
}

func (c *MemCrate) GetValItemByPath(p types.SimplePath) (*ValItem, bool) {
	v, ok := c.ValItems[p.String()]
	return v, ok
}

func (c *MemCrate) GetMacroItemByPath(p types.SimplePath) (*MacroItem, bool) {
	m, ok := c.MacroItems[p.String()]
	return m, ok
}

func (c *MemCrate) FindTraitImpls(trait types.SimplePath, ty types.TypeRef) []*ImplDef {
	var out []*ImplDef
	for _, impl := range c.Impls {
		if !impl.Trait.Path.Equal(trait) {
			continue
		}
		if types.Compare(impl.Type, ty) == 0 || impl.Type.IsGround() == false {
			// An un-ground impl type is a generic impl (e.g. impl<T> Trait for Vec<T>);
			// the resolver, not this crate-level scan, decides whether it unifies.
			out = append(out, impl)
		}
	}
	return out
}

func (c *MemCrate) GetLangItemPathOpt(name string) (types.SimplePath, bool) {
	p, ok := c.LangItems[name]
	return p, ok
}

func (c *MemCrate) ExternCrates() []string { return c.Extern }

func (c *MemCrate) GetModByPath(p types.SimplePath) (*Module, bool) {
	m, ok := c.Mods[p.String()]
	return m, ok
}
