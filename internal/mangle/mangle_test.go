package mangle_test

import (
	"strings"
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/mangle"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func TestSimplePathEncodesCrateAndComponents(t *testing.T) {
	p := types.NewSimplePath("mycrate", "foo", "Bar")
	got, err := mangle.SimplePath(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "ZRG2c") {
		t.Fatalf("expected ZRG prefix + 2 components, got %q", got)
	}
}

func TestGenericPathEncodesTypeParams(t *testing.T) {
	gp := types.GenericPath{
		Path:   types.NewSimplePath("mycrate", "Vec"),
		Params: types.PathParams{Types: []types.TypeRef{types.NewPrimitive(types.U32)}},
	}
	got, err := mangle.GenericPath(gp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "1gCe") {
		t.Fatalf("expected one type param (u32 -> Ce), got %q", got)
	}
}

func TestTypeRefEncodesTuple(t *testing.T) {
	ty := types.NewTuple(types.NewPrimitive(types.Bool), types.NewPrimitive(types.Char))
	got, err := mangle.TypeRef(ty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ZRTT2CwCx" {
		t.Fatalf("got %q", got)
	}
}

func TestTypeRefRejectsGeneric(t *testing.T) {
	ty := types.NewGenericRef(types.GenericRef{Group: types.GroupItem, Index: 0})
	if _, err := mangle.TypeRef(ty); err == nil {
		t.Fatalf("expected an error mangling an unsubstituted generic ref")
	}
}

func TestTypePathRejectsUfcsUnknown(t *testing.T) {
	ty := types.NewPrimitive(types.U32)
	p := types.NewUfcsUnknown(ty, "Item", types.PathParams{})
	if _, err := mangle.TypePath(p); err == nil {
		t.Fatalf("expected an error mangling a PathUfcsUnknown")
	}
}

func TestTypePathEncodesUfcsKnown(t *testing.T) {
	selfTy := types.NewPrimitive(types.U32)
	trait := types.GenericPath{Path: types.NewSimplePath("mycrate", "Iterator")}
	p := types.NewUfcsKnown(selfTy, trait, "Item", types.PathParams{})
	got, err := mangle.TypePath(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "ZRQ") {
		t.Fatalf("expected ZRQ-prefixed UFCS-known encoding, got %q", got)
	}
}

func TestEncodeNameSplitsOnHash(t *testing.T) {
	p := types.NewSimplePath("mycrate", "closure#0")
	got, err := mangle.SimplePath(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "h7closure10") {
		t.Fatalf("expected hash-split name encoding, got %q", got)
	}
}

func TestEncodeNameRejectsLeadingDigit(t *testing.T) {
	p := types.NewSimplePath("mycrate", "0bad")
	if _, err := mangle.SimplePath(p); err == nil {
		t.Fatalf("expected an error for a leading-digit identifier")
	}
}

func TestTruncationAppliesPastMaxLen(t *testing.T) {
	components := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		components = append(components, "averylongcomponentnamepaddedout")
	}
	p := types.NewSimplePath("mycrate", components...)
	got, err := mangle.SimplePath(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 128-9 bytes of prefix, then "$", then at most 16 hex digits of hash.
	if len(got) > 136 {
		t.Fatalf("expected truncated output to be at most 136 bytes, got %d", len(got))
	}
	if !strings.Contains(got, "$") {
		t.Fatalf("expected a hash suffix after truncation, got %q", got)
	}
}
