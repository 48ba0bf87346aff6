package config

import (
	"fmt"
	"strings"
)

// Error lists every problem found in one config file, so a single `config
// test` run reports all of them.
type Error struct {
	Path string

	// Missing holds unset ${VAR} references, either NAME or "NAME: message"
	// for ${VAR:?message}.
	Missing []string

	// Errors holds validation problems as "field: problem".
	Errors []string
}

// HasErrors reports whether anything was recorded.
func (e *Error) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}

func (e *Error) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "config %s:\n", e.Path)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "missing environment variables: %s\n", strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		b.WriteString("validation failed:\n")
		for _, msg := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
