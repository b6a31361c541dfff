// Package errors defines the diagnostic taxonomy emitted by the checker,
// lowering, and verifier (§7), plus a caret-style reporter for
// rendering them.
package errors

// Error code ranges:
//
//	E09xx: semantic analysis errors produced by the checker (§7)
//	V0xxx: verifier obligations rejected at the Prover boundary
const (
	ErrUnknownValue        = "E0901"
	ErrUnknownType         = "E0902"
	ErrTypeMismatch        = "E0903"
	ErrNonExhaustiveMatch  = "E0904"
	ErrWildcardNotLast     = "E0905"
	ErrDuplicateMatchArm   = "E0906"
	ErrUseAfterMove        = "E0907"
	ErrRequiresMut         = "E0908"
	ErrLiteralOutOfRange   = "E0909"
	ErrArityMismatch       = "E0910"
	ErrUnsupportedRefinementBase = "E0911"

	ErrVerifyFailed = "V0001"
)

var descriptions = map[string]string{
	ErrUnknownValue:              "value is used but has no binding in scope",
	ErrUnknownType:                "named type does not resolve to any declaration",
	ErrTypeMismatch:               "expression type does not match the expected type",
	ErrNonExhaustiveMatch:         "match is missing a trailing wildcard arm",
	ErrWildcardNotLast:            "wildcard arm must be the last arm",
	ErrDuplicateMatchArm:          "duplicate match arm for the same literal or constructor",
	ErrUseAfterMove:               "value used after it was moved",
	ErrRequiresMut:                "binding is immutable: a write-borrow or assignment requires it be declared mut",
	ErrLiteralOutOfRange:          "integer literal falls outside the required refinement range",
	ErrArityMismatch:              "call supplies the wrong number of arguments",
	ErrUnsupportedRefinementBase:  "refinement ranges are only wired for U32 bases",
	ErrVerifyFailed:               "the verifier could not discharge a proof obligation",
}

func Describe(code string) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "unknown diagnostic code"
}
