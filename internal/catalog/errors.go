package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when the referenced book id is not in the catalog.
	ErrNotFound = errors.New("book not found")

	// ErrConflict is returned when a borrow or return is not allowed in the
	// book's current availability state.
	ErrConflict = errors.New("availability conflict")

	// ErrAlreadyBorrowed rejects a borrow of a book that is already out.
	ErrAlreadyBorrowed = fmt.Errorf("%w: book is already borrowed", ErrConflict)

	// ErrAlreadyAvailable rejects a return of a book that is on the shelf.
	ErrAlreadyAvailable = fmt.Errorf("%w: book is already available", ErrConflict)
)

// ValidationError carries the field-level failures collected while checking
// a request. Errors maps a field name to a human readable message.
type ValidationError struct {
	Errors map[string]string
}

// Error lists the failing fields in a stable order.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field, msg := range e.Errors {
		fields = append(fields, field+" "+msg)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, "; ")
}

// notFound wraps ErrNotFound with the id that was looked up.
func notFound(id int64) error {
	return fmt.Errorf("book with id %d: %w", id, ErrNotFound)
}
