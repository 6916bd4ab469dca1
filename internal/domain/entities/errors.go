package entities

import "github.com/cockroachdb/errors"

// Error taxonomy. Use errors.Is against these; infrastructure marks its
// failures with errors.Mark so the category survives wrapping.
var (
	// ErrNotFound indicates a named entity does not exist in the store.
	ErrNotFound = errors.New("not found")

	// ErrRuleViolation indicates a resolvable entity failed a safety or availability rule.
	ErrRuleViolation = errors.New("rule violation")

	// ErrMalformedInput indicates the inbound payload is not a scheduling request.
	ErrMalformedInput = errors.New("malformed input")

	// ErrPersistence indicates the knowledge store could not be loaded or saved.
	ErrPersistence = errors.New("persistence failure")

	// ErrConflict indicates a record with the same identifier already exists.
	ErrConflict = errors.New("conflict")
)

// NotFoundError reports a missing entity of a given kind.
func NotFoundError(kind Kind, name string) error {
	return errors.Mark(errors.Newf("%s %q not found", kind, name), ErrNotFound)
}
