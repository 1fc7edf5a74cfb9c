package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrForbidden       = errors.New("user not authorized to perform this action")

	// ErrUnavailable marks unexpected storage faults. Repositories wrap the
	// driver error with it so callers can tell a definitive absence from an
	// infrastructure failure.
	ErrUnavailable = errors.New("listing storage unavailable")
)

// ValidationError carries one message per violated field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
