package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/querybuilder"
)

// AdminRepository is the persistence contract for back-office operators.
type AdminRepository interface {
	Find(ctx context.Context, filter AdminFilter, opts FindOptions) ([]model.Admin, error)
	FindByID(ctx context.Context, id string) (model.Admin, error)
	FindByEmail(ctx context.Context, email string) (model.Admin, error)
	Count(ctx context.Context, filter AdminFilter) (int64, error)
	Create(ctx context.Context, params CreateAdminParams) (model.Admin, error)
	Update(ctx context.Context, id string, patch AdminPatch) (model.Admin, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CreateAdminParams carries a new admin record. CreatedBy is nil for the
// bootstrap admin created from the CLI.
type CreateAdminParams struct {
	Email        string
	PasswordHash string
	SuperAdmin   bool
	CreatedBy    *string
}

// AdminPatch is a sparse update; nil fields leave the stored value untouched.
type AdminPatch struct {
	Email        *string
	PasswordHash *string
	SuperAdmin   *bool
}

var adminSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"email":     "email",
}

const adminColumns = `id, email, password_hash, super_admin, created_by, created_at, updated_at`

// PGAdminRepository implements AdminRepository over PostgreSQL.
type PGAdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a PostgreSQL-backed admin repository.
func NewAdminRepository(pool *pgxpool.Pool) *PGAdminRepository {
	return &PGAdminRepository{pool: pool}
}

func adminQuery(filter AdminFilter) *querybuilder.Query {
	q := querybuilder.New()
	if filter.Email != "" {
		q.Eq("email", filter.Email)
	}
	q.EqBool("super_admin", filter.SuperAdmin)
	if filter.CreatedBy != "" {
		q.Eq("created_by", filter.CreatedBy)
	}
	return q
}

// Find returns admins matching the filter, shaped by opts.
func (r *PGAdminRepository) Find(ctx context.Context, filter AdminFilter, opts FindOptions) ([]model.Admin, error) {
	q := adminQuery(filter)

	column, direction, err := opts.sort().Resolve(adminSortFields, "created_at", "ASC")
	if err != nil {
		return nil, err
	}
	q.OrderBy(column, direction).Skip(opts.Skip).Limit(opts.Limit)

	sql, args := q.Build("SELECT " + adminColumns + " FROM admins")

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("admins: find: %w", err)
	}
	defer rows.Close()

	var out []model.Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("admins: scan: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// FindByID returns the admin with the given id.
func (r *PGAdminRepository) FindByID(ctx context.Context, id string) (model.Admin, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+adminColumns+" FROM admins WHERE id = $1", id)
	a, err := scanAdmin(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Admin{}, fmt.Errorf("table:admins: %w", pgx.ErrNoRows)
		}
		return model.Admin{}, fmt.Errorf("admins: find by id: %w", err)
	}
	return a, nil
}

// FindByEmail returns the admin with the given login email.
func (r *PGAdminRepository) FindByEmail(ctx context.Context, email string) (model.Admin, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+adminColumns+" FROM admins WHERE email = $1", email)
	a, err := scanAdmin(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Admin{}, fmt.Errorf("table:admins: %w", pgx.ErrNoRows)
		}
		return model.Admin{}, fmt.Errorf("admins: find by email: %w", err)
	}
	return a, nil
}

// Count returns the number of admins matching the filter.
func (r *PGAdminRepository) Count(ctx context.Context, filter AdminFilter) (int64, error) {
	sql, args := adminQuery(filter).BuildCount("SELECT count(*) FROM admins")

	var count int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("admins: count: %w", err)
	}
	return count, nil
}

// Create inserts an admin and returns the stored row.
func (r *PGAdminRepository) Create(ctx context.Context, params CreateAdminParams) (model.Admin, error) {
	const insertSQL = `
		INSERT INTO admins (email, password_hash, super_admin, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + adminColumns

	a, err := scanAdmin(r.pool.QueryRow(ctx, insertSQL,
		params.Email,
		params.PasswordHash,
		params.SuperAdmin,
		params.CreatedBy,
	))
	if err != nil {
		return model.Admin{}, fmt.Errorf("admins: create: %w", err)
	}
	return a, nil
}

// Update applies a sparse patch. An empty patch performs no write and
// returns the row as stored.
func (r *PGAdminRepository) Update(ctx context.Context, id string, patch AdminPatch) (model.Admin, error) {
	u := querybuilder.NewUpdate().
		SetString("email", patch.Email).
		SetString("password_hash", patch.PasswordHash).
		SetBool("super_admin", patch.SuperAdmin)

	if u.Empty() {
		return r.FindByID(ctx, id)
	}

	sql, args := u.Build("admins", id, adminColumns)

	a, err := scanAdmin(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Admin{}, fmt.Errorf("table:admins: %w", pgx.ErrNoRows)
		}
		return model.Admin{}, fmt.Errorf("admins: update: %w", err)
	}
	return a, nil
}

// Delete removes an admin, reporting whether a row actually existed.
func (r *PGAdminRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM admins WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("admins: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanAdmin(row pgx.Row) (model.Admin, error) {
	var a model.Admin
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.SuperAdmin,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return model.Admin{}, err
	}
	return a, nil
}
