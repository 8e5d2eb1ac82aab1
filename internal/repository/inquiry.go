package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/querybuilder"
)

// InquiryRepository is the persistence contract for visitor inquiries.
type InquiryRepository interface {
	Find(ctx context.Context, filter InquiryFilter, opts FindOptions) ([]model.Inquiry, error)
	FindByID(ctx context.Context, id string) (model.Inquiry, error)
	Count(ctx context.Context, filter InquiryFilter) (int64, error)
	Create(ctx context.Context, params CreateInquiryParams) (model.Inquiry, error)
	Update(ctx context.Context, id string, patch InquiryPatch) (model.Inquiry, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CreateInquiryParams carries a new inquiry record. Status and Verified are
// set by the caller so creation policy stays in the service layer.
type CreateInquiryParams struct {
	PropertyID       string
	Name             string
	Email            string
	Phone            string
	Message          string
	PreferredContact model.ContactChannel
	Status           model.InquiryStatus
	Verified         bool
}

// InquiryPatch is a sparse update; nil fields leave the stored value
// untouched. The visitor's message is immutable once submitted.
type InquiryPatch struct {
	Status   *model.InquiryStatus
	Verified *bool
}

var inquirySortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"status":    "status",
	"name":      "name",
}

const inquiryColumns = `id, property_id, name, email, phone, message, preferred_contact, status, verified, created_at, updated_at`

// PGInquiryRepository implements InquiryRepository over PostgreSQL.
type PGInquiryRepository struct {
	pool *pgxpool.Pool
}

// NewInquiryRepository creates a PostgreSQL-backed inquiry repository.
func NewInquiryRepository(pool *pgxpool.Pool) *PGInquiryRepository {
	return &PGInquiryRepository{pool: pool}
}

func inquiryQuery(filter InquiryFilter) *querybuilder.Query {
	q := querybuilder.New()
	if filter.PropertyID != "" {
		q.Eq("property_id", filter.PropertyID)
	}
	if filter.Status != "" {
		q.Eq("status", string(filter.Status))
	}
	statuses := make([]string, 0, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses = append(statuses, string(s))
	}
	q.AnyOf("status", statuses, "text[]")
	if filter.Email != "" {
		q.Eq("email", filter.Email)
	}
	q.EqBool("verified", filter.Verified)
	return q
}

// Find returns inquiries matching the filter, shaped by opts.
func (r *PGInquiryRepository) Find(ctx context.Context, filter InquiryFilter, opts FindOptions) ([]model.Inquiry, error) {
	q := inquiryQuery(filter)

	column, direction, err := opts.sort().Resolve(inquirySortFields, "created_at", "DESC")
	if err != nil {
		return nil, err
	}
	q.OrderBy(column, direction).Skip(opts.Skip).Limit(opts.Limit)

	sql, args := q.Build("SELECT " + inquiryColumns + " FROM inquiries")

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("inquiries: find: %w", err)
	}
	defer rows.Close()

	var out []model.Inquiry
	for rows.Next() {
		iq, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("inquiries: scan: %w", err)
		}
		out = append(out, iq)
	}
	return out, rows.Err()
}

// FindByID returns the inquiry with the given id.
func (r *PGInquiryRepository) FindByID(ctx context.Context, id string) (model.Inquiry, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+inquiryColumns+" FROM inquiries WHERE id = $1", id)
	iq, err := scanInquiry(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Inquiry{}, fmt.Errorf("table:inquiries: %w", pgx.ErrNoRows)
		}
		return model.Inquiry{}, fmt.Errorf("inquiries: find by id: %w", err)
	}
	return iq, nil
}

// Count returns the number of inquiries matching the filter.
func (r *PGInquiryRepository) Count(ctx context.Context, filter InquiryFilter) (int64, error) {
	sql, args := inquiryQuery(filter).BuildCount("SELECT count(*) FROM inquiries")

	var count int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("inquiries: count: %w", err)
	}
	return count, nil
}

// Create inserts an inquiry and returns the stored row.
func (r *PGInquiryRepository) Create(ctx context.Context, params CreateInquiryParams) (model.Inquiry, error) {
	const insertSQL = `
		INSERT INTO inquiries (property_id, name, email, phone, message, preferred_contact, status, verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + inquiryColumns

	iq, err := scanInquiry(r.pool.QueryRow(ctx, insertSQL,
		params.PropertyID,
		params.Name,
		params.Email,
		params.Phone,
		params.Message,
		params.PreferredContact,
		params.Status,
		params.Verified,
	))
	if err != nil {
		return model.Inquiry{}, fmt.Errorf("inquiries: create: %w", err)
	}
	return iq, nil
}

// Update applies a sparse patch. An empty patch performs no write and
// returns the row as stored.
func (r *PGInquiryRepository) Update(ctx context.Context, id string, patch InquiryPatch) (model.Inquiry, error) {
	u := querybuilder.NewUpdate().
		SetBool("verified", patch.Verified)
	if patch.Status != nil {
		u.Set("status", string(*patch.Status))
	}

	if u.Empty() {
		return r.FindByID(ctx, id)
	}

	sql, args := u.Build("inquiries", id, inquiryColumns)

	iq, err := scanInquiry(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Inquiry{}, fmt.Errorf("table:inquiries: %w", pgx.ErrNoRows)
		}
		return model.Inquiry{}, fmt.Errorf("inquiries: update: %w", err)
	}
	return iq, nil
}

// Delete removes an inquiry, reporting whether a row actually existed.
func (r *PGInquiryRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM inquiries WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("inquiries: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanInquiry(row pgx.Row) (model.Inquiry, error) {
	var iq model.Inquiry
	err := row.Scan(
		&iq.ID,
		&iq.PropertyID,
		&iq.Name,
		&iq.Email,
		&iq.Phone,
		&iq.Message,
		&iq.PreferredContact,
		&iq.Status,
		&iq.Verified,
		&iq.CreatedAt,
		&iq.UpdatedAt,
	)
	if err != nil {
		return model.Inquiry{}, err
	}
	return iq, nil
}
