package hir_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/hir"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func TestMemCrateRoundTripsItems(t *testing.T) {
	c := hir.NewMemCrate("mycrate")

	displayPath := types.NewSimplePath("mycrate", "Display")
	c.AddTrait(&hir.TraitDef{Path: displayPath, AssocTypes: []string{"Output"}})

	fooPath := types.NewSimplePath("mycrate", "Foo")
	c.AddTypeItem(&hir.TypeItem{Kind: hir.TypeItemStruct, Path: fooPath, Fields: []types.TypeRef{types.NewPrimitive(types.U32)}})

	fnPath := types.NewSimplePath("mycrate", "main")
	c.AddValItem(&hir.ValItem{Path: fnPath, RetType: types.NewUnit()})

	fooType := types.NewPath(types.NewGenericPathItem(fooPath, types.PathParams{}))
	c.AddImpl(&hir.ImplDef{
		Trait: types.GenericPath{Path: displayPath},
		Type:  fooType,
	})

	if _, ok := c.GetTraitByPath(displayPath); !ok {
		t.Fatalf("expected trait to round-trip")
	}
	if _, ok := c.GetTypeItemByPath(fooPath); !ok {
		t.Fatalf("expected type item to round-trip")
	}
	if _, ok := c.GetValItemByPath(fnPath); !ok {
		t.Fatalf("expected value item to round-trip")
	}
	impls := c.FindTraitImpls(displayPath, fooType)
	if len(impls) != 1 {
		t.Fatalf("expected exactly one impl match, got %d", len(impls))
	}
}

func TestGetLangItemPathOptMissing(t *testing.T) {
	c := hir.NewMemCrate("mycrate")
	if _, ok := c.GetLangItemPathOpt("owned_box"); ok {
		t.Fatalf("expected no lang item to be registered")
	}
	c.SetLangItem("owned_box", types.NewSimplePath("core", "Box"))
	if p, ok := c.GetLangItemPathOpt("owned_box"); !ok || p.String() != "::core::Box" {
		t.Fatalf("unexpected lang item lookup result: %+v %v", p, ok)
	}
}
