package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyQueryHasNoWhere(t *testing.T) {
	sql, args := New().Build("SELECT * FROM properties")

	assert.Equal(t, "SELECT * FROM properties", sql)
	assert.Empty(t, args)
}

func TestConditionsJoinWithAnd(t *testing.T) {
	q := New().
		Eq("city", "Nairobi").
		Eq("property_type", "apartment")

	sql, args := q.Build("SELECT * FROM properties")

	assert.Equal(t, "SELECT * FROM properties WHERE city = $1 AND property_type = $2", sql)
	assert.Equal(t, []any{"Nairobi", "apartment"}, args)
}

func TestRangeBoundsAreInclusiveAndIndependent(t *testing.T) {
	sql, args := New().GTE("price", int64(50000)).LTE("price", int64(100000)).Build("SELECT * FROM properties")
	assert.Equal(t, "SELECT * FROM properties WHERE price >= $1 AND price <= $2", sql)
	assert.Equal(t, []any{int64(50000), int64(100000)}, args)

	// Either bound may appear alone.
	sql, args = New().LTE("price", int64(100000)).Build("SELECT * FROM properties")
	assert.Equal(t, "SELECT * FROM properties WHERE price <= $1", sql)
	assert.Equal(t, []any{int64(100000)}, args)
}

func TestContainsEscapesLikeMetacharacters(t *testing.T) {
	sql, args := New().Contains("city", "100%_rift\\valley").Build("SELECT * FROM properties")

	assert.Equal(t, `SELECT * FROM properties WHERE city ILIKE $1 ESCAPE '\'`, sql)
	require.Len(t, args, 1)
	assert.Equal(t, `%100\%\_rift\\valley%`, args[0])
}

func TestContainsAnyGroupsWithOr(t *testing.T) {
	sql, args := New().ContainsAny([]string{"city", "address"}, "Westlands").Build("SELECT * FROM properties")

	assert.Equal(t, `SELECT * FROM properties WHERE (city ILIKE $1 ESCAPE '\' OR address ILIKE $2 ESCAPE '\')`, sql)
	assert.Equal(t, []any{"%Westlands%", "%Westlands%"}, args)
}

func TestAnyOfAndOverlapsSkipEmptySets(t *testing.T) {
	sql, args := New().
		AnyOf("status", nil, "text[]").
		Overlaps("amenities", nil).
		Build("SELECT * FROM inquiries")
	assert.Equal(t, "SELECT * FROM inquiries", sql)
	assert.Empty(t, args)

	sql, args = New().AnyOf("status", []string{"pending", "contacted"}, "text[]").Build("SELECT * FROM inquiries")
	assert.Equal(t, "SELECT * FROM inquiries WHERE status = ANY($1::text[])", sql)
	assert.Equal(t, []any{[]string{"pending", "contacted"}}, args)

	sql, args = New().Overlaps("amenities", []string{"parking", "wifi"}).Build("SELECT * FROM properties")
	assert.Equal(t, "SELECT * FROM properties WHERE amenities && $1::text[]", sql)
	assert.Equal(t, []any{[]string{"parking", "wifi"}}, args)
}

func TestEqBoolSkipsNil(t *testing.T) {
	available := true

	sql, args := New().EqBool("available", &available).EqBool("featured", nil).Build("SELECT * FROM properties")

	assert.Equal(t, "SELECT * FROM properties WHERE available = $1", sql)
	assert.Equal(t, []any{true}, args)
}

func TestPaginationPlaceholdersFollowConditionArgs(t *testing.T) {
	q := New().Eq("city", "Nairobi").Limit(20).Skip(40)
	q.OrderBy("created_at", "DESC")

	sql, args := q.Build("SELECT * FROM properties")

	assert.Equal(t, "SELECT * FROM properties WHERE city = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3", sql)
	assert.Equal(t, []any{"Nairobi", int64(20), int64(40)}, args)
}

func TestZeroSkipAndLimitAreUnset(t *testing.T) {
	sql, args := New().Limit(0).Skip(0).Build("SELECT * FROM properties")

	assert.Equal(t, "SELECT * FROM properties", sql)
	assert.Empty(t, args)
}

func TestBuildCountIgnoresSortAndPagination(t *testing.T) {
	q := New().Eq("city", "Nairobi").GTE("price", int64(50000)).Limit(10).Skip(20)
	q.OrderBy("price", "ASC")

	countSQL, countArgs := q.BuildCount("SELECT count(*) FROM properties")
	assert.Equal(t, "SELECT count(*) FROM properties WHERE city = $1 AND price >= $2", countSQL)
	assert.Equal(t, []any{"Nairobi", int64(50000)}, countArgs)

	// The find twin keeps the identical predicate set.
	findSQL, _ := q.Build("SELECT * FROM properties")
	assert.Contains(t, findSQL, "WHERE city = $1 AND price >= $2")
}

func TestSortResolveWhitelist(t *testing.T) {
	allowed := map[string]string{
		"price":     "price",
		"createdAt": "created_at",
	}

	column, direction, err := Sort{}.Resolve(allowed, "created_at", "DESC")
	require.NoError(t, err)
	assert.Equal(t, "created_at", column)
	assert.Equal(t, "DESC", direction)

	column, direction, err = Sort{Field: "price", Direction: "asc"}.Resolve(allowed, "created_at", "DESC")
	require.NoError(t, err)
	assert.Equal(t, "price", column)
	assert.Equal(t, "ASC", direction)

	_, _, err = Sort{Field: "passwordHash"}.Resolve(allowed, "created_at", "DESC")
	assert.Error(t, err)

	_, _, err = Sort{Field: "price", Direction: "sideways"}.Resolve(allowed, "created_at", "DESC")
	assert.Error(t, err)
}

func TestUpdateBuilderSparsePatch(t *testing.T) {
	title := "Two-bed in Kilimani"
	price := int64(95000)

	u := NewUpdate().
		SetString("title", &title).
		SetString("description", nil).
		SetInt64("price", &price)

	require.False(t, u.Empty())

	sql, args := u.Build("properties", "abc-123", "id, title, price")
	assert.Equal(t, "UPDATE properties SET title = $1, price = $2, updated_at = now() WHERE id = $3 RETURNING id, title, price", sql)
	assert.Equal(t, []any{"Two-bed in Kilimani", int64(95000), "abc-123"}, args)
}

func TestUpdateBuilderEmptyPatch(t *testing.T) {
	u := NewUpdate().
		SetString("title", nil).
		SetBool("available", nil).
		SetStrings("amenities", nil)

	assert.True(t, u.Empty())
}
