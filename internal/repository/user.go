package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/querybuilder"
)

// UserRepository is the persistence contract for site visitors with accounts.
type UserRepository interface {
	Find(ctx context.Context, filter UserFilter, opts FindOptions) ([]model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	FindOne(ctx context.Context, filter UserFilter) (model.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	Create(ctx context.Context, params CreateUserParams) (model.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CreateUserParams carries a new user record.
type CreateUserParams struct {
	ClerkID  string
	Name     string
	Email    string
	Phone    string
	Role     model.UserRole
	Verified bool
}

// UserPatch is a sparse update; nil fields leave the stored value untouched.
type UserPatch struct {
	Name            *string
	Email           *string
	Phone           *string
	Role            *model.UserRole
	SavedProperties *[]string
	Verified        *bool
}

var userSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"email":     "email",
}

const userColumns = `id, clerk_id, name, email, phone, role, saved_properties, verified, created_at, updated_at`

// PGUserRepository implements UserRepository over PostgreSQL.
type PGUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) *PGUserRepository {
	return &PGUserRepository{pool: pool}
}

func userQuery(filter UserFilter) *querybuilder.Query {
	q := querybuilder.New()
	if filter.ClerkID != "" {
		q.Eq("clerk_id", filter.ClerkID)
	}
	if filter.Email != "" {
		q.Eq("email", filter.Email)
	}
	if filter.Role != "" {
		q.Eq("role", string(filter.Role))
	}
	q.EqBool("verified", filter.Verified)
	return q
}

// Find returns users matching the filter, shaped by opts.
func (r *PGUserRepository) Find(ctx context.Context, filter UserFilter, opts FindOptions) ([]model.User, error) {
	q := userQuery(filter)

	column, direction, err := opts.sort().Resolve(userSortFields, "created_at", "DESC")
	if err != nil {
		return nil, err
	}
	q.OrderBy(column, direction).Skip(opts.Skip).Limit(opts.Limit)

	sql, args := q.Build("SELECT " + userColumns + " FROM users")

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("users: find: %w", err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("users: scan: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// FindByID returns the user with the given id.
func (r *PGUserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	u, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.User{}, fmt.Errorf("table:users: %w", pgx.ErrNoRows)
		}
		return model.User{}, fmt.Errorf("users: find by id: %w", err)
	}
	return u, nil
}

// FindOne returns the first user matching the filter in default order.
func (r *PGUserRepository) FindOne(ctx context.Context, filter UserFilter) (model.User, error) {
	q := userQuery(filter)
	q.OrderBy("created_at", "DESC").Limit(1)
	sql, args := q.Build("SELECT " + userColumns + " FROM users")

	u, err := scanUser(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.User{}, fmt.Errorf("table:users: %w", pgx.ErrNoRows)
		}
		return model.User{}, fmt.Errorf("users: find one: %w", err)
	}
	return u, nil
}

// Count returns the number of users matching the filter.
func (r *PGUserRepository) Count(ctx context.Context, filter UserFilter) (int64, error) {
	sql, args := userQuery(filter).BuildCount("SELECT count(*) FROM users")

	var count int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("users: count: %w", err)
	}
	return count, nil
}

// Create inserts a user and returns the stored row.
func (r *PGUserRepository) Create(ctx context.Context, params CreateUserParams) (model.User, error) {
	const insertSQL = `
		INSERT INTO users (clerk_id, name, email, phone, role, verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	u, err := scanUser(r.pool.QueryRow(ctx, insertSQL,
		params.ClerkID,
		params.Name,
		params.Email,
		params.Phone,
		params.Role,
		params.Verified,
	))
	if err != nil {
		return model.User{}, fmt.Errorf("users: create: %w", err)
	}
	return u, nil
}

// Update applies a sparse patch. An empty patch performs no write and
// returns the row as stored. Saved property ids are cast to uuid[] so the
// array column keeps its element type.
func (r *PGUserRepository) Update(ctx context.Context, id string, patch UserPatch) (model.User, error) {
	u := querybuilder.NewUpdate().
		SetString("name", patch.Name).
		SetString("email", patch.Email).
		SetString("phone", patch.Phone).
		SetBool("verified", patch.Verified)
	if patch.Role != nil {
		u.Set("role", string(*patch.Role))
	}
	if patch.SavedProperties != nil {
		u.Set("saved_properties", *patch.SavedProperties)
	}

	if u.Empty() {
		return r.FindByID(ctx, id)
	}

	sql, args := u.Build("users", id, userColumns)

	out, err := scanUser(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.User{}, fmt.Errorf("table:users: %w", pgx.ErrNoRows)
		}
		return model.User{}, fmt.Errorf("users: update: %w", err)
	}
	return out, nil
}

// Delete removes a user, reporting whether a row actually existed.
func (r *PGUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("users: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	// clerk_id is nullable: rows imported before identity went hosted have
	// no provider subject.
	var clerkID *string
	err := row.Scan(
		&u.ID,
		&clerkID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Role,
		&u.SavedProperties,
		&u.Verified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	if clerkID != nil {
		u.ClerkID = *clerkID
	}
	return u, nil
}
