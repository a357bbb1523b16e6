package resolve_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/hir"
	"github.com/malphas-lang/malphas-lang/internal/resolve"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func displayFoo() (*hir.MemCrate, types.SimplePath, types.TypeRef) {
	c := hir.NewMemCrate("mycrate")
	displayPath := types.NewSimplePath("mycrate", "Display")
	c.AddTrait(&hir.TraitDef{Path: displayPath})

	fooPath := types.NewSimplePath("mycrate", "Foo")
	fooType := types.NewPath(types.NewGenericPathItem(fooPath, types.PathParams{}))

	c.AddImpl(&hir.ImplDef{
		Trait: types.GenericPath{Path: displayPath},
		Type:  fooType,
	})
	return c, displayPath, fooType
}

func TestTypeImplementsYes(t *testing.T) {
	c, displayPath, fooType := displayFoo()
	r := resolve.New(c, types.GenericParams{}, types.GenericParams{})
	got := r.TypeImplements(fooType, types.GenericPath{Path: displayPath})
	if got != resolve.Yes {
		t.Fatalf("expected Yes, got %v", got)
	}
}

func TestTypeImplementsNoForUnrelatedType(t *testing.T) {
	c, displayPath, _ := displayFoo()
	r := resolve.New(c, types.GenericParams{}, types.GenericParams{})
	u8 := types.NewPrimitive(types.U8)
	got := r.TypeImplements(u8, types.GenericPath{Path: displayPath})
	if got != resolve.No {
		t.Fatalf("expected No, got %v", got)
	}
}

func TestTypeImplementsIsCached(t *testing.T) {
	c, displayPath, fooType := displayFoo()
	r := resolve.New(c, types.GenericParams{}, types.GenericParams{})
	first := r.TypeImplements(fooType, types.GenericPath{Path: displayPath})
	second := r.TypeImplements(fooType, types.GenericPath{Path: displayPath})
	if first != second {
		t.Fatalf("expected a cached query to return the same verdict: %v vs %v", first, second)
	}
}

func TestExpandAssociatedTypesResolvesProjection(t *testing.T) {
	c := hir.NewMemCrate("mycrate")
	iterPath := types.NewSimplePath("mycrate", "Iterator")
	c.AddTrait(&hir.TraitDef{Path: iterPath, AssocTypes: []string{"Item"}})

	fooPath := types.NewSimplePath("mycrate", "Foo")
	fooType := types.NewPath(types.NewGenericPathItem(fooPath, types.PathParams{}))
	u32 := types.NewPrimitive(types.U32)

	c.AddImpl(&hir.ImplDef{
		Trait:      types.GenericPath{Path: iterPath},
		Type:       fooType,
		AssocTypes: map[string]types.TypeRef{"Item": u32},
	})

	projection := types.NewPath(types.NewUfcsKnown(fooType, types.GenericPath{Path: iterPath}, "Item", types.PathParams{}))

	r := resolve.New(c, types.GenericParams{}, types.GenericParams{})
	expanded, diags := r.ExpandAssociatedTypes(projection)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
	if !expanded.Equal(u32) {
		t.Fatalf("expected projection to expand to u32, got %s", expanded.String())
	}
}

func TestExpandAssociatedTypesReportsCycle(t *testing.T) {
	c := hir.NewMemCrate("mycrate")
	iterPath := types.NewSimplePath("mycrate", "Iterator")
	c.AddTrait(&hir.TraitDef{Path: iterPath, AssocTypes: []string{"Item"}})

	fooPath := types.NewSimplePath("mycrate", "Foo")
	fooType := types.NewPath(types.NewGenericPathItem(fooPath, types.PathParams{}))

	projection := types.NewPath(types.NewUfcsKnown(fooType, types.GenericPath{Path: iterPath}, "Item", types.PathParams{}))

	c.AddImpl(&hir.ImplDef{
		Trait:      types.GenericPath{Path: iterPath},
		Type:       fooType,
		AssocTypes: map[string]types.TypeRef{"Item": projection},
	})

	r := resolve.New(c, types.GenericParams{}, types.GenericParams{})
	_, diags := r.ExpandAssociatedTypes(projection)
	if len(diags) == 0 {
		t.Fatalf("expected a cycle diagnostic")
	}
}

// TestExpandAssociatedTypesResolvesGenericParamBound is spec.md §8 scenario
// 6: a bound `I : Iterator<Item = u8>` on a generic parameter `I` (not a
// concrete type with its own impl) makes `<I as Iterator>::Item` expand to
// u8 via the type-equality index, with no crate impl involved at all.
func TestExpandAssociatedTypesResolvesGenericParamBound(t *testing.T) {
	c := hir.NewMemCrate("mycrate")
	iterPath := types.NewSimplePath("mycrate", "Iterator")
	c.AddTrait(&hir.TraitDef{Path: iterPath, AssocTypes: []string{"Item"}})

	genericI := types.NewGenericRef(types.GenericRef{Group: types.GroupItem, Index: 0})
	u8 := types.NewPrimitive(types.U8)

	itemGenerics := types.GenericParams{
		Types: []types.TypeParamDef{{Name: "I"}},
		Bounds: []types.Bound{
			types.NewTraitBound(genericI, types.TraitPath{
				Trait:       iterPath,
				AssocBounds: map[string]types.TypeRef{"Item": u8},
			}),
		},
	}

	r := resolve.New(c, types.GenericParams{}, itemGenerics)
	projection := types.NewPath(types.NewUfcsKnown(genericI, types.GenericPath{Path: iterPath}, "Item", types.PathParams{}))

	expanded, diags := r.ExpandAssociatedTypes(projection)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
	if !expanded.Equal(u8) {
		t.Fatalf("expected the generic-param bound's projection to expand to u8, got %s", expanded.String())
	}
}

// TestTypeImplementsConsultsBoundIndexBeforeCrateImpls: the same `I :
// Iterator` bound makes TypeImplements(I, Iterator) report Yes directly,
// with no impl of Iterator for I anywhere in the crate to find.
func TestTypeImplementsConsultsBoundIndexBeforeCrateImpls(t *testing.T) {
	c := hir.NewMemCrate("mycrate")
	iterPath := types.NewSimplePath("mycrate", "Iterator")
	c.AddTrait(&hir.TraitDef{Path: iterPath, AssocTypes: []string{"Item"}})

	genericI := types.NewGenericRef(types.GenericRef{Group: types.GroupItem, Index: 0})
	itemGenerics := types.GenericParams{
		Bounds: []types.Bound{types.NewTraitBound(genericI, types.TraitPath{Trait: iterPath})},
	}

	r := resolve.New(c, types.GenericParams{}, itemGenerics)
	if got := r.TypeImplements(genericI, types.GenericPath{Path: iterPath}); got != resolve.Yes {
		t.Fatalf("expected Yes from the bound index, got %v", got)
	}
}

func TestTypeImplementsBuiltinCopyAndSized(t *testing.T) {
	c := hir.NewMemCrate("mycrate")
	r := resolve.New(c, types.GenericParams{}, types.GenericParams{})

	u8 := types.NewPrimitive(types.U8)
	copyTrait := types.GenericPath{Path: types.NewSimplePath("core", "Copy")}
	if got := r.TypeImplements(u8, copyTrait); got != resolve.Yes {
		t.Fatalf("expected u8 : Copy to be Yes, got %v", got)
	}

	str := types.NewPrimitive(types.Str)
	if got := r.TypeImplements(str, copyTrait); got != resolve.No {
		t.Fatalf("expected str : Copy to be No, got %v", got)
	}

	sizedTrait := types.GenericPath{Path: types.NewSimplePath("core", "Sized")}
	if got := r.TypeImplements(u8, sizedTrait); got != resolve.Yes {
		t.Fatalf("expected u8 : Sized to be Yes, got %v", got)
	}
	if got := r.TypeImplements(types.NewSlice(u8), sizedTrait); got != resolve.No {
		t.Fatalf("expected [u8] : Sized to be No, got %v", got)
	}
}
