package ontology

import "fmt"

// Kind classifies the errors the core can raise. Construction-time kinds
// (DuplicateTerm, UnknownParent, Cycle, BuilderState) are fatal: no
// Ontology escapes a failed Freeze. Codec kinds (UnsupportedVersion,
// Truncated, Malformed) are fatal to the decode that raised them.
// UnknownTerm, ObsoleteTerm, and InvalidIdFormat are raised for recoverable,
// per-row annotation problems; callers that want to see them can inspect
// the error returned by the Add* methods, but a built Ontology does not
// require every row to succeed.
type Kind int

const (
	// DuplicateTerm is raised when two term stanzas share an id.
	DuplicateTerm Kind = iota
	// UnknownParent is raised when an is_a target does not exist at
	// freeze time.
	UnknownParent
	// Cycle is raised when the parent graph is not a DAG.
	Cycle
	// UnknownTerm is raised when an annotation references a term id
	// that is not present in the ontology.
	UnknownTerm
	// ObsoleteTerm is raised when an annotation references an obsolete
	// term.
	ObsoleteTerm
	// InvalidIdFormat is raised when a string id cannot be parsed.
	InvalidIdFormat
	// UnsupportedVersion is raised when a binary header carries an
	// unknown codec version.
	UnsupportedVersion
	// Truncated is raised when a binary stream ends before all
	// documented fields have been read.
	Truncated
	// Malformed is raised when a binary stream's internal counts or
	// encoded strings are inconsistent.
	Malformed
	// BuilderState is raised when an operation is invoked in the wrong
	// lifecycle state (e.g. adding a term after Freeze).
	BuilderState
)

func (k Kind) String() string {
	switch k {
	case DuplicateTerm:
		return "DuplicateTerm"
	case UnknownParent:
		return "UnknownParent"
	case Cycle:
		return "Cycle"
	case UnknownTerm:
		return "UnknownTerm"
	case ObsoleteTerm:
		return "ObsoleteTerm"
	case InvalidIdFormat:
		return "InvalidIdFormat"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case Truncated:
		return "Truncated"
	case Malformed:
		return "Malformed"
	case BuilderState:
		return "BuilderState"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the concrete error type returned by the core for every failure
// listed in Kind. It wraps an optional underlying cause so callers can
// still use errors.Is/errors.As against both the Kind and the cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any, so errors.Is/errors.As see
// through an ontology.Error to a wrapped *pkg/errors.Error or other cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, &ontology.Error{Kind: ontology.Cycle}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newErr(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}
