package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/querybuilder"
)

// PropertyRepository is the persistence contract for rental listings.
type PropertyRepository interface {
	Find(ctx context.Context, filter PropertyFilter, opts FindOptions) ([]model.Property, error)
	FindByID(ctx context.Context, id string) (model.Property, error)
	FindOne(ctx context.Context, filter PropertyFilter) (model.Property, error)
	Count(ctx context.Context, filter PropertyFilter) (int64, error)
	Create(ctx context.Context, params CreatePropertyParams) (model.Property, error)
	Update(ctx context.Context, id string, patch PropertyPatch) (model.Property, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CreatePropertyParams carries the full required-field record for Create.
type CreatePropertyParams struct {
	Title        string
	Description  string
	Price        int64
	Address      string
	City         string
	County       string
	Latitude     float64
	Longitude    float64
	PlaceRef     string
	PropertyType model.PropertyType
	Bedrooms     int
	Bathrooms    int
	AreaSqM      float64
	Amenities    []string
	Images       []string
	Featured     bool
	Available    bool
}

// PropertyPatch is a sparse update; nil fields leave the stored value
// untouched.
type PropertyPatch struct {
	Title        *string
	Description  *string
	Price        *int64
	Address      *string
	City         *string
	County       *string
	Latitude     *float64
	Longitude    *float64
	PlaceRef     *string
	PropertyType *model.PropertyType
	Bedrooms     *int
	Bathrooms    *int
	AreaSqM      *float64
	Amenities    *[]string
	Images       *[]string
	Featured     *bool
	Available    *bool
}

// propertySortFields whitelists external sort names onto columns.
var propertySortFields = map[string]string{
	"price":     "price",
	"bedrooms":  "bedrooms",
	"bathrooms": "bathrooms",
	"areaSqM":   "area_sq_m",
	"title":     "title",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

const propertyColumns = `id, title, description, price, address, city, county, latitude, longitude, place_ref, property_type, bedrooms, bathrooms, area_sq_m, amenities, images, featured, available, created_at, updated_at`

// PGPropertyRepository implements PropertyRepository over PostgreSQL.
type PGPropertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository creates a PostgreSQL-backed property repository.
func NewPropertyRepository(pool *pgxpool.Pool) *PGPropertyRepository {
	return &PGPropertyRepository{pool: pool}
}

func propertyQuery(filter PropertyFilter) *querybuilder.Query {
	q := querybuilder.New()
	q.AnyOf("id", filter.IDs, "uuid[]")
	if filter.Location != "" {
		q.ContainsAny([]string{"city", "address"}, filter.Location)
	}
	if filter.City != "" {
		q.Eq("city", filter.City)
	}
	if filter.County != "" {
		q.Eq("county", filter.County)
	}
	if filter.Search != "" {
		q.ContainsAny([]string{"title", "description"}, filter.Search)
	}
	if filter.PropertyType != "" {
		q.Eq("property_type", string(filter.PropertyType))
	}
	if filter.MinPrice != nil {
		q.GTE("price", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q.LTE("price", *filter.MaxPrice)
	}
	if filter.Bedrooms != nil {
		q.Eq("bedrooms", *filter.Bedrooms)
	}
	if filter.Bathrooms != nil {
		q.Eq("bathrooms", *filter.Bathrooms)
	}
	q.Overlaps("amenities", filter.Amenities)
	q.EqBool("available", filter.Available)
	q.EqBool("featured", filter.Featured)
	return q
}

// Find returns properties matching the filter, shaped by opts.
func (r *PGPropertyRepository) Find(ctx context.Context, filter PropertyFilter, opts FindOptions) ([]model.Property, error) {
	q := propertyQuery(filter)

	column, direction, err := opts.sort().Resolve(propertySortFields, "created_at", "DESC")
	if err != nil {
		return nil, err
	}
	q.OrderBy(column, direction).Skip(opts.Skip).Limit(opts.Limit)

	sql, args := q.Build("SELECT " + propertyColumns + " FROM properties")

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("properties: find: %w", err)
	}
	defer rows.Close()

	var out []model.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("properties: scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// FindByID returns the property with the given id.
func (r *PGPropertyRepository) FindByID(ctx context.Context, id string) (model.Property, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+propertyColumns+" FROM properties WHERE id = $1", id)
	p, err := scanProperty(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Property{}, fmt.Errorf("table:properties: %w", pgx.ErrNoRows)
		}
		return model.Property{}, fmt.Errorf("properties: find by id: %w", err)
	}
	return p, nil
}

// FindOne returns the first property matching the filter in default order.
func (r *PGPropertyRepository) FindOne(ctx context.Context, filter PropertyFilter) (model.Property, error) {
	q := propertyQuery(filter)
	q.OrderBy("created_at", "DESC").Limit(1)
	sql, args := q.Build("SELECT " + propertyColumns + " FROM properties")

	p, err := scanProperty(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Property{}, fmt.Errorf("table:properties: %w", pgx.ErrNoRows)
		}
		return model.Property{}, fmt.Errorf("properties: find one: %w", err)
	}
	return p, nil
}

// Count returns the number of properties matching the filter. It never
// applies sort or pagination.
func (r *PGPropertyRepository) Count(ctx context.Context, filter PropertyFilter) (int64, error) {
	sql, args := propertyQuery(filter).BuildCount("SELECT count(*) FROM properties")

	var count int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("properties: count: %w", err)
	}
	return count, nil
}

// Create inserts a property and returns the stored row with its
// server-assigned id and timestamps.
func (r *PGPropertyRepository) Create(ctx context.Context, params CreatePropertyParams) (model.Property, error) {
	const insertSQL = `
		INSERT INTO properties (title, description, price, address, city, county, latitude, longitude, place_ref, property_type, bedrooms, bathrooms, area_sq_m, amenities, images, featured, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + propertyColumns

	p, err := scanProperty(r.pool.QueryRow(ctx, insertSQL,
		params.Title,
		params.Description,
		params.Price,
		params.Address,
		params.City,
		params.County,
		params.Latitude,
		params.Longitude,
		params.PlaceRef,
		params.PropertyType,
		params.Bedrooms,
		params.Bathrooms,
		params.AreaSqM,
		params.Amenities,
		params.Images,
		params.Featured,
		params.Available,
	))
	if err != nil {
		return model.Property{}, fmt.Errorf("properties: create: %w", err)
	}
	return p, nil
}

// Update applies a sparse patch. An empty patch performs no write and
// returns the row as stored.
func (r *PGPropertyRepository) Update(ctx context.Context, id string, patch PropertyPatch) (model.Property, error) {
	u := querybuilder.NewUpdate().
		SetString("title", patch.Title).
		SetString("description", patch.Description).
		SetInt64("price", patch.Price).
		SetString("address", patch.Address).
		SetString("city", patch.City).
		SetString("county", patch.County).
		SetFloat64("latitude", patch.Latitude).
		SetFloat64("longitude", patch.Longitude).
		SetString("place_ref", patch.PlaceRef).
		SetInt("bedrooms", patch.Bedrooms).
		SetInt("bathrooms", patch.Bathrooms).
		SetFloat64("area_sq_m", patch.AreaSqM).
		SetStrings("amenities", patch.Amenities).
		SetStrings("images", patch.Images).
		SetBool("featured", patch.Featured).
		SetBool("available", patch.Available)
	if patch.PropertyType != nil {
		u.Set("property_type", string(*patch.PropertyType))
	}

	if u.Empty() {
		return r.FindByID(ctx, id)
	}

	sql, args := u.Build("properties", id, propertyColumns)

	p, err := scanProperty(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Property{}, fmt.Errorf("table:properties: %w", pgx.ErrNoRows)
		}
		return model.Property{}, fmt.Errorf("properties: update: %w", err)
	}
	return p, nil
}

// Delete removes a property, reporting whether a row actually existed.
func (r *PGPropertyRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM properties WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("properties: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanProperty(row pgx.Row) (model.Property, error) {
	var p model.Property
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Address,
		&p.City,
		&p.County,
		&p.Latitude,
		&p.Longitude,
		&p.PlaceRef,
		&p.PropertyType,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.AreaSqM,
		&p.Amenities,
		&p.Images,
		&p.Featured,
		&p.Available,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return model.Property{}, err
	}
	return p, nil
}
