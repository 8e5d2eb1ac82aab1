package querybuilder

import (
	"fmt"
	"strings"
)

// Update accumulates assignment clauses for a sparse partial update.
// Only fields the caller explicitly sets produce assignments; an Update
// with no assignments is the caller's cue to degrade to a plain fetch.
type Update struct {
	sets []string
	args []any
}

// NewUpdate returns an empty update builder.
func NewUpdate() *Update {
	return &Update{}
}

// Set adds an assignment for column when the caller supplied a value.
func (u *Update) Set(column string, v any) *Update {
	u.args = append(u.args, v)
	u.sets = append(u.sets, fmt.Sprintf("%s = $%d", column, len(u.args)))
	return u
}

// SetString, SetInt64, SetInt, SetFloat64, SetBool and SetStrings add an
// assignment only when the pointer is non-nil, matching the sparse-patch
// contract: absent fields leave the stored value untouched.
func (u *Update) SetString(column string, v *string) *Update {
	if v != nil {
		u.Set(column, *v)
	}
	return u
}

func (u *Update) SetInt64(column string, v *int64) *Update {
	if v != nil {
		u.Set(column, *v)
	}
	return u
}

func (u *Update) SetInt(column string, v *int) *Update {
	if v != nil {
		u.Set(column, *v)
	}
	return u
}

func (u *Update) SetFloat64(column string, v *float64) *Update {
	if v != nil {
		u.Set(column, *v)
	}
	return u
}

func (u *Update) SetBool(column string, v *bool) *Update {
	if v != nil {
		u.Set(column, *v)
	}
	return u
}

func (u *Update) SetStrings(column string, v *[]string) *Update {
	if v != nil {
		u.Set(column, *v)
	}
	return u
}

// Empty reports whether no assignments were added.
func (u *Update) Empty() bool {
	return len(u.sets) == 0
}

// Build assembles "UPDATE table SET ..., updated_at = now() WHERE id = $n"
// with an optional RETURNING list. The id is the final bound argument.
func (u *Update) Build(table, id, returning string) (string, []any) {
	args := append(u.args, id)
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(table)
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(u.sets, ", "))
	sb.WriteString(", updated_at = now()")
	sb.WriteString(fmt.Sprintf(" WHERE id = $%d", len(args)))
	if returning != "" {
		sb.WriteString(" RETURNING ")
		sb.WriteString(returning)
	}
	return sb.String(), args
}
