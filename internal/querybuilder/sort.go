package querybuilder

import (
	"fmt"
	"strings"
)

// Sort is a caller-supplied sort request: an external field name plus a
// direction ("asc"/"desc", any case).
type Sort struct {
	Field     string
	Direction string
}

// Resolve maps the external field name onto a real column using the
// entity's whitelist and normalizes the direction. Unknown fields are
// rejected here instead of surfacing as storage-engine errors at execution
// time. Zero-value sorts fall back to the given default clause.
func (s Sort) Resolve(allowed map[string]string, defaultColumn, defaultDirection string) (column, direction string, err error) {
	if s.Field == "" {
		return defaultColumn, defaultDirection, nil
	}
	column, ok := allowed[s.Field]
	if !ok {
		return "", "", fmt.Errorf("querybuilder: unknown sort field %q", s.Field)
	}
	switch strings.ToLower(s.Direction) {
	case "", "desc":
		direction = "DESC"
	case "asc":
		direction = "ASC"
	default:
		return "", "", fmt.Errorf("querybuilder: invalid sort direction %q", s.Direction)
	}
	return column, direction, nil
}
