// Package querybuilder turns sparse filter predicates into parameter-bound
// SQL fragments.
//
// Repositories describe what they want (equality, case-insensitive contains,
// inclusive range bounds, set membership, sorting, pagination) and the
// builder emits a WHERE/ORDER BY/LIMIT tail with $n placeholders plus the
// matching args slice. Values never end up concatenated into SQL text.
//
// Absent predicates add no clause: a builder with no conditions produces an
// empty WHERE and the query matches every row.
package querybuilder

import (
	"fmt"
	"strings"
)

// Query accumulates filter conditions and result-shaping options for a
// single SELECT (or its COUNT twin).
type Query struct {
	conds   []string
	args    []any
	orderBy string
	limit   int64
	offset  int64
}

// New returns an empty query. Limit and offset start unset: no cap, no skip.
func New() *Query {
	return &Query{}
}

// bind appends v to the args slice and returns its placeholder.
func (q *Query) bind(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// Eq adds an exact-match condition.
func (q *Query) Eq(column string, v any) *Query {
	q.conds = append(q.conds, fmt.Sprintf("%s = %s", column, q.bind(v)))
	return q
}

// EqBool adds a boolean exact-match condition when v is set.
func (q *Query) EqBool(column string, v *bool) *Query {
	if v != nil {
		q.Eq(column, *v)
	}
	return q
}

// Contains adds a case-insensitive substring condition over one column.
// The needle is escaped so %, _ and \ match literally.
func (q *Query) Contains(column, needle string) *Query {
	q.conds = append(q.conds, fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, column, q.bind(likePattern(needle))))
	return q
}

// ContainsAny adds a case-insensitive substring condition matching when any
// of the given columns contains the needle. One placeholder is bound per
// column so the fragment stays position-independent.
func (q *Query) ContainsAny(columns []string, needle string) *Query {
	if len(columns) == 0 {
		return q
	}
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, column, q.bind(likePattern(needle))))
	}
	q.conds = append(q.conds, "("+strings.Join(parts, " OR ")+")")
	return q
}

// GTE adds an inclusive lower bound when v is set.
func (q *Query) GTE(column string, v any) *Query {
	q.conds = append(q.conds, fmt.Sprintf("%s >= %s", column, q.bind(v)))
	return q
}

// LTE adds an inclusive upper bound when v is set.
func (q *Query) LTE(column string, v any) *Query {
	q.conds = append(q.conds, fmt.Sprintf("%s <= %s", column, q.bind(v)))
	return q
}

// AnyOf adds a set-membership condition: column = ANY($n::cast).
// The cast (e.g. "text[]", "uuid[]") keeps Postgres from guessing the
// array's element type. Empty value sets add no clause.
func (q *Query) AnyOf(column string, values []string, cast string) *Query {
	if len(values) == 0 {
		return q
	}
	q.conds = append(q.conds, fmt.Sprintf("%s = ANY(%s::%s)", column, q.bind(values), cast))
	return q
}

// Overlaps adds an array-overlap condition for tag columns: any shared
// element matches. Empty value sets add no clause.
func (q *Query) Overlaps(column string, values []string) *Query {
	if len(values) == 0 {
		return q
	}
	q.conds = append(q.conds, fmt.Sprintf("%s && %s::text[]", column, q.bind(values)))
	return q
}

// OrderBy sets the sort clause. The column must already have been checked
// against a whitelist; see Sort.Resolve.
func (q *Query) OrderBy(column, direction string) *Query {
	q.orderBy = column + " " + direction
	return q
}

// Skip sets the row offset. Values <= 0 leave the offset unset.
func (q *Query) Skip(n int64) *Query {
	if n > 0 {
		q.offset = n
	}
	return q
}

// Limit caps the number of rows returned. Values <= 0 leave the cap unset.
func (q *Query) Limit(n int64) *Query {
	if n > 0 {
		q.limit = n
	}
	return q
}

// Build assembles the full SELECT from a base statement ("SELECT ... FROM t")
// plus the accumulated WHERE, ORDER BY, LIMIT and OFFSET.
func (q *Query) Build(baseSelect string) (string, []any) {
	var sb strings.Builder
	sb.WriteString(baseSelect)
	sb.WriteString(q.whereClause())
	if q.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.orderBy)
	}
	args := q.args
	if q.limit > 0 {
		args = append(args, q.limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if q.offset > 0 {
		args = append(args, q.offset)
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}
	return sb.String(), args
}

// BuildCount assembles the counting twin of the query. It reuses the exact
// predicate set but never applies sort or pagination.
func (q *Query) BuildCount(baseCount string) (string, []any) {
	return baseCount + q.whereClause(), q.args
}

func (q *Query) whereClause() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conds, " AND ")
}

// likePattern wraps a needle in % wildcards, escaping LIKE metacharacters
// so user input matches literally.
func likePattern(needle string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(needle) + "%"
}
