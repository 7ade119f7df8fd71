// ABOUTME: Error types returned by the coach service.
// ABOUTME: ValidationError carries per-field messages for client-facing 400 responses.
package coach

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports invalid input, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}
