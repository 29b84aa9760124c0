// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
)

// ErrNoUpdate means the upstream reported nothing new for this cycle.
var ErrNoUpdate = errors.New("no homework status updates")

// SchemaError reports an upstream payload whose shape does not match expectations.
type SchemaError struct {
	Field string // JSON path of the offending value, "" for the top level
	Want  string
	Got   string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("unexpected response shape: want %s, got %s", e.Want, e.Got)
	}
	return fmt.Sprintf("unexpected response shape at %q: want %s, got %s", e.Field, e.Want, e.Got)
}

// UnknownStatusError is returned for a status outside the known set.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown homework status %q", e.Status)
}
