package diag_test

import (
	"testing"

	"github.com/malphas-lang/malphas-lang/internal/diag"
)

func TestNewBuildsMinimalDiagnostic(t *testing.T) {
	span := diag.Span{Filename: "crate::foo", Line: 1, Column: 3, Start: 2, End: 6}
	d := diag.New(diag.StageResolver, diag.SeverityError, diag.CodeResolverNoImpl, "no impl found", span)

	if d.Stage != diag.StageResolver {
		t.Fatalf("expected stage %q, got %q", diag.StageResolver, d.Stage)
	}
	if d.Code != diag.CodeResolverNoImpl {
		t.Fatalf("expected code %q, got %q", diag.CodeResolverNoImpl, d.Code)
	}
	if d.Severity != diag.SeverityError {
		t.Fatalf("expected severity %q, got %q", diag.SeverityError, d.Severity)
	}
	if d.Span != span {
		t.Fatalf("expected span %+v, got %+v", span, d.Span)
	}
	if len(d.ProofChain) != 0 || len(d.Notes) != 0 {
		t.Fatalf("expected a fresh diagnostic to carry no proof chain or notes")
	}
}

func TestWithProofChainAndNote(t *testing.T) {
	d := diag.New(diag.StageResolver, diag.SeverityError, diag.CodeResolverAmbiguousImpl, "ambiguous impl", diag.Span{})
	d = d.WithProofChain([]diag.ProofStep{
		{Message: "checked impl<T: Display> Foo<T>"},
		{Message: "checked impl<T: Debug> Foo<T>"},
	}).WithNote("both impls apply for this substitution")

	if len(d.ProofChain) != 2 {
		t.Fatalf("expected 2 proof steps, got %d", len(d.ProofChain))
	}
	if len(d.Notes) != 1 || d.Notes[0] != "both impls apply for this substitution" {
		t.Fatalf("unexpected notes: %+v", d.Notes)
	}
}

func TestSpanIsValid(t *testing.T) {
	if (diag.Span{}).IsValid() {
		t.Fatalf("zero-value span should not be valid")
	}
	if !(diag.Span{Line: 1}).IsValid() {
		t.Fatalf("span with a line number should be valid")
	}
	if !(diag.Span{Filename: "x"}).IsValid() {
		t.Fatalf("span with a filename should be valid")
	}
}
