// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// input from handlers, applies domain rules, and calls repositories to
// read and persist data. Services depend on repository interfaces so tests
// can run against in-memory fakes.
package service

import "github.com/nyumbahomes/nyumba/internal/repository"

const (
	// DefaultPageSize applies when a list request carries no limit.
	DefaultPageSize = 20

	// MaxPageSize caps the limit a caller may request.
	MaxPageSize = 100
)

// ListOptions shapes the public list surface: single-field sort plus
// one-based page pagination.
type ListOptions struct {
	SortBy    string
	SortOrder string
	Page      int64
	Limit     int64
}

// findOptions clamps page and limit into their allowed ranges and converts
// them to the repository's offset form. It returns the normalized options
// together with the effective page and limit for echoing back to clients.
func (o ListOptions) findOptions() (repository.FindOptions, int64, int64) {
	page := o.Page
	if page <= 0 {
		page = 1
	}

	limit := o.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	return repository.FindOptions{
		SortBy:    o.SortBy,
		SortOrder: o.SortOrder,
		Skip:      (page - 1) * limit,
		Limit:     limit,
	}, page, limit
}
