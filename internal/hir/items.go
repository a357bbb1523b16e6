// Package hir is the high-level IR query surface (component described in
// spec.md §6): the read-only view over a crate that internal/resolve and
// internal/mono consult while they work, and that internal/mir's Function
// values are attached to. It never performs lowering itself — lowering
// source into HIR/MIR stays outside this module's scope, matching the
// teacher's division between internal/parser+ast (lowering) and the data
// model those stages populate.
package hir

import (
	"github.com/malphas-lang/malphas-lang/internal/ident"
	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// TraitDef is a trait's declaration: its own generics, its supertrait/where
// bounds, and the associated types and constants it declares (spec.md §5
// "associated-type expansion").
type TraitDef struct {
	Path       types.SimplePath
	Generics   types.GenericParams
	AssocTypes []string // names of associated types this trait declares
}

// ImplDef is one `impl<...> Trait for Type` block (spec.md §5).
type ImplDef struct {
	Generics   types.GenericParams
	Trait      types.GenericPath
	Type       types.TypeRef
	AssocTypes map[string]types.TypeRef // associated-type bindings this impl provides
	Methods    map[string]*ValItem
}

// TypeItemKind discriminates a type item (spec.md §6 GetTypeItemByPath).
type TypeItemKind uint8

const (
	TypeItemStruct TypeItemKind = iota
	TypeItemEnum
	TypeItemUnion
	TypeItemAlias
)

// TypeItem is a struct/enum/union/type-alias declaration.
type TypeItem struct {
	Kind     TypeItemKind
	Path     types.SimplePath
	Generics types.GenericParams
	Fields   []types.TypeRef   // Struct/Union field types, Enum variant payload concatenation
	Variants []string          // Enum variant names, ordinally aligned with Fields groupings the caller tracks
	Alias    *types.TypeRef    // TypeItemAlias
}

// ValItem is a value item: a function or a static/const, carrying its MIR
// body once lowering has populated it (spec.md §6 GetValItemByPath).
type ValItem struct {
	Path     types.SimplePath
	Generics types.GenericParams
	ArgTypes []types.TypeRef
	RetType  types.TypeRef
	Body     *mir.Function // nil for an external/intrinsic declaration
}

// MacroItem is an opaque macro-item entry; the HIR query surface reports
// its existence without interpreting it (spec.md §6 GetMacroItemByPath:
// macro expansion itself is out of scope, matching the lowering
// boundary above).
type MacroItem struct {
	Path types.SimplePath
}

// Module groups items under a path prefix (spec.md §6 GetModByPath).
type Module struct {
	Path      types.SimplePath
	SubMods   []ident.Symbol
	Types     []ident.Symbol
	Values    []ident.Symbol
	Traits    []ident.Symbol
}
