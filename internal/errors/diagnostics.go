package errors

import (
	"fmt"

	"aura-lang/internal/span"
)

// Severity mirrors the teacher's ErrorLevel.
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// RelatedSpan attaches a secondary span with its own message to a
// diagnostic — e.g. the move site referenced by a use-after-move error.
type RelatedSpan struct {
	Span    span.Span
	Message string
}

// SemanticError is the diagnostic shape from §7: one message, one
// primary span, an error code, and optional related spans.
type SemanticError struct {
	Code     string
	Message  string
	Span     span.Span
	Related  []RelatedSpan
	Severity Severity
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSemanticError(code, message string, s span.Span) *SemanticError {
	return &SemanticError{Code: code, Message: message, Span: s, Severity: Error}
}

func (e *SemanticError) WithRelated(s span.Span, message string) *SemanticError {
	e.Related = append(e.Related, RelatedSpan{Span: s, Message: message})
	return e
}

// VerifyError is produced at the Prover boundary (§4.6, §7): a predicate
// description, a primary span, and an optional counterexample.
type VerifyError struct {
	Predicate      string
	Span           span.Span
	Counterexample string
}

func (e *VerifyError) Error() string {
	if e.Counterexample != "" {
		return fmt.Sprintf("could not prove %q (counterexample: %s)", e.Predicate, e.Counterexample)
	}
	return fmt.Sprintf("could not prove %q", e.Predicate)
}

// Diagnostics accumulates errors for a single compilation unit in the
// order they are added; checker.CheckProgram sorts Semantic by span
// offset before returning it (§5 ordering guarantees).
type Diagnostics struct {
	Semantic []*SemanticError
	Verify   []*VerifyError
}

func (d *Diagnostics) AddSemantic(e *SemanticError) {
	d.Semantic = append(d.Semantic, e)
}

func (d *Diagnostics) AddVerify(e *VerifyError) {
	d.Verify = append(d.Verify, e)
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Semantic) > 0
}
