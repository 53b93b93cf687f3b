package coverage

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrMalformedRecord matches every *MalformedRecordError
	ErrMalformedRecord = errors.New("malformed sensor record")
	// ErrNotFound matches every *NotFoundError
	ErrNotFound = errors.New("no uncovered position")
	// ErrBoundTooLarge is returned for bounds whose signal would overflow int
	ErrBoundTooLarge = errors.New("bound too large")
)

// MalformedRecordError reports an input line that does not carry exactly four integers
type MalformedRecordError struct {
	Line   int
	Text   string
	Values int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: malformed sensor record %q: found %d integers, want 4", e.Line, e.Text, e.Values)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// NotFoundError reports that every position of the search square is covered
type NotFoundError struct {
	Bound int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no uncovered position in [0,%d]x[0,%d]", e.Bound, e.Bound)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
