package normalize

import "fmt"

// ParseError is returned when a single display field cannot be converted,
// the record that owns the field is expected to be dropped.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: unrecognized value %q", e.Field, e.Value)
}

func parseError(field, value string) error {
	return &ParseError{Field: field, Value: value}
}
