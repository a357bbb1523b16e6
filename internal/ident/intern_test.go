package ident_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/ident"
)

func TestInternReturnsStableSymbolForEqualStrings(t *testing.T) {
	a := ident.Intern("foo")
	b := ident.Intern("foo")
	if a != b {
		t.Fatalf("expected interning the same string twice to yield equal symbols")
	}
	if a.String() != "foo" {
		t.Fatalf("expected round-trip string, got %q", a.String())
	}
}

func TestInternDistinguishesDifferentStrings(t *testing.T) {
	a := ident.Intern("foo")
	b := ident.Intern("bar")
	if a == b {
		t.Fatalf("expected distinct strings to intern to distinct symbols")
	}
}

func TestEmptyIsZeroLengthString(t *testing.T) {
	if ident.Empty.String() != "" {
		t.Fatalf("expected Empty to round-trip to the empty string")
	}
}

func TestLessGivesATotalOrder(t *testing.T) {
	a := ident.Intern("apple")
	b := ident.Intern("banana")
	if !a.Less(b) || b.Less(a) {
		t.Fatalf("expected apple < banana and not the reverse")
	}
	if a.Less(a) {
		t.Fatalf("expected Less to be irreflexive")
	}
}
