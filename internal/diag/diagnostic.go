// Package diag is the diagnostic model shared by every compiler stage
// (spec.md §7): user-facing errors, resolver failures, validator
// violations, and not-yet-implemented features all flow through the same
// Diagnostic shape so a single Formatter can render any of them.
package diag

import "fmt"

// Stage identifies which of the four diagnostic-producing phases raised a
// Diagnostic (spec.md §7).
type Stage string

const (
	StageUser          Stage = "user"          // surface-level usage errors (CLI args, missing input)
	StageResolver      Stage = "resolver"      // trait resolution / associated-type expansion failures
	StageValidator     Stage = "validator"     // MIR well-formedness violations
	StageUnimplemented Stage = "unimplemented" // features named by the spec but not yet wired
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	CodeResolverAmbiguousImpl    Code = "RESOLVER_AMBIGUOUS_IMPL"
	CodeResolverNoImpl           Code = "RESOLVER_NO_IMPL"
	CodeResolverRecursive        Code = "RESOLVER_RECURSIVE_BOUND"
	CodeResolverUnknownAssocType Code = "RESOLVER_UNKNOWN_ASSOC_TYPE"

	CodeValidatorBadLValue     Code = "VALIDATOR_NON_WRITABLE_LVALUE"
	CodeValidatorBadBlockRef   Code = "VALIDATOR_UNKNOWN_BLOCK"
	CodeValidatorBadDropFlag   Code = "VALIDATOR_UNKNOWN_DROP_FLAG"
	CodeValidatorBadWrapper    Code = "VALIDATOR_BAD_WRAPPER"
	CodeValidatorArityMismatch Code = "VALIDATOR_ARITY_MISMATCH"
	CodeValidatorBadTerminator Code = "VALIDATOR_BAD_TERMINATOR"

	CodeMangleUnencodable Code = "MANGLE_UNENCODABLE_INPUT"

	CodeUnimplementedFeature Code = "UNIMPLEMENTED_FEATURE"
)

// Span represents a location in source material (a MIR dump, a mangling
// input, or whatever textual form a stage is reporting against).
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// IsValid reports whether the span carries a real location.
func (s Span) IsValid() bool { return s.Filename != "" || s.Line > 0 }

func (s Span) String() string {
	if s.Filename == "" {
		return fmt.Sprintf("line %d, col %d", s.Line, s.Column)
	}
	return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
}

// LabeledSpan attaches a rendering style and an inline label to a Span.
// Style is either "primary" (gets the ^^^ underline) or "secondary" (gets
// the ~~~ underline).
type LabeledSpan struct {
	Span  Span
	Style string
	Label string
}

// ProofStep is one link in a resolver's reasoning chain, e.g. the sequence
// of trait bounds consulted while deciding type_implements (spec.md §5).
type ProofStep struct {
	Message string
	Span    Span
}

// Diagnostic is a single reported problem, carrying enough structure for
// Formatter to render it either as a source-annotated report or, lacking
// loadable source, as a one-line summary.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span

	LabeledSpans []LabeledSpan
	ProofChain   []ProofStep
	Notes        []string
	Help         string
	Suggestion   string
	Related      []Span
}

// WithProofChain returns a copy of d with its reasoning chain set, for
// resolver diagnostics that want to show how type_implements reached its
// verdict.
func (d Diagnostic) WithProofChain(steps []ProofStep) Diagnostic {
	d.ProofChain = steps
	return d
}

// WithNote appends a note line.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// New builds a minimal Diagnostic for the common case of a single span.
func New(stage Stage, sev Severity, code Code, msg string, span Span) Diagnostic {
	return Diagnostic{Stage: stage, Severity: sev, Code: code, Message: msg, Span: span}
}
