package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyumbahomes/nyumba/internal/lib/geocode"
	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/repository"
)

func seedProperties(t *testing.T, repo *fakePropertyRepository, n int, city string, basePrice int64) []model.Property {
	t.Helper()
	out := make([]model.Property, 0, n)
	for i := 0; i < n; i++ {
		p, err := repo.Create(context.Background(), repository.CreatePropertyParams{
			Title:        "Listing",
			Description:  "A listing",
			Price:        basePrice + int64(i)*1000,
			Address:      "Some Road",
			City:         city,
			County:       "Nairobi",
			PropertyType: model.PropertyTypeApartment,
			Bedrooms:     2,
			Bathrooms:    1,
			Available:    true,
		})
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestPropertyListCountIgnoresPagination(t *testing.T) {
	repo := &fakePropertyRepository{}
	seedProperties(t, repo, 7, "Nairobi", 30000)
	seedProperties(t, repo, 3, "Mombasa", 20000)

	svc := NewPropertyService(repo, nil, &testLogger)

	list, err := svc.List(context.Background(), repository.PropertyFilter{City: "Nairobi"}, ListOptions{Page: 2, Limit: 5})
	require.NoError(t, err)

	assert.Len(t, list.Data, 2)
	assert.Equal(t, int64(7), list.Total)
	assert.Equal(t, int64(2), list.Page)
}

func TestPropertyListDefaultsAndCapsLimit(t *testing.T) {
	repo := &fakePropertyRepository{}
	svc := NewPropertyService(repo, nil, &testLogger)

	list, err := svc.List(context.Background(), repository.PropertyFilter{}, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultPageSize), list.Limit)
	assert.Equal(t, int64(1), list.Page)
	assert.NotNil(t, list.Data)

	list, err = svc.List(context.Background(), repository.PropertyFilter{}, ListOptions{Limit: 5000, Page: -3})
	require.NoError(t, err)
	assert.Equal(t, int64(MaxPageSize), list.Limit)
	assert.Equal(t, int64(1), list.Page)
}

func TestPropertyListPriceRangeIsInclusive(t *testing.T) {
	repo := &fakePropertyRepository{}
	seedProperties(t, repo, 5, "Nairobi", 10000) // 10000..14000

	svc := NewPropertyService(repo, nil, &testLogger)

	min := int64(10000)
	max := int64(12000)
	list, err := svc.List(context.Background(), repository.PropertyFilter{MinPrice: &min, MaxPrice: &max}, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
}

func TestPropertyGetRejectsMalformedID(t *testing.T) {
	svc := NewPropertyService(&fakePropertyRepository{}, nil, &testLogger)

	_, err := svc.Get(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPropertyCreateGeocodesWhenCoordinatesMissing(t *testing.T) {
	repo := &fakePropertyRepository{}
	geo := &fakeGeocoder{
		enabled: true,
		result:  geocode.Result{Latitude: -1.2921, Longitude: 36.8219, PlaceRef: "pl_nairobi"},
	}
	svc := NewPropertyService(repo, geo, &testLogger)

	p, err := svc.Create(context.Background(), repository.CreatePropertyParams{
		Title:        "Listing",
		Price:        45000,
		Address:      "Ngong Road",
		City:         "Nairobi",
		PropertyType: model.PropertyTypeApartment,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, geo.calls)
	assert.Equal(t, -1.2921, p.Latitude)
	assert.Equal(t, "pl_nairobi", p.PlaceRef)
}

func TestPropertyCreateKeepsCallerCoordinates(t *testing.T) {
	repo := &fakePropertyRepository{}
	geo := &fakeGeocoder{enabled: true}
	svc := NewPropertyService(repo, geo, &testLogger)

	p, err := svc.Create(context.Background(), repository.CreatePropertyParams{
		Title:        "Listing",
		Price:        45000,
		Address:      "Moi Avenue",
		City:         "Mombasa",
		Latitude:     -4.0435,
		Longitude:    39.6682,
		PropertyType: model.PropertyTypeHouse,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, geo.calls)
	assert.Equal(t, -4.0435, p.Latitude)
}

func TestPropertyCreateSurvivesGeocodingFailure(t *testing.T) {
	repo := &fakePropertyRepository{}
	geo := &fakeGeocoder{enabled: true, failWith: errors.New("provider down")}
	svc := NewPropertyService(repo, geo, &testLogger)

	p, err := svc.Create(context.Background(), repository.CreatePropertyParams{
		Title:        "Listing",
		Price:        45000,
		Address:      "Ngong Road",
		City:         "Nairobi",
		PropertyType: model.PropertyTypeApartment,
	})
	require.NoError(t, err)
	assert.Zero(t, p.Latitude)
	assert.Zero(t, p.Longitude)
}

func TestPropertyUpdateEmptyPatchReturnsStoredRow(t *testing.T) {
	repo := &fakePropertyRepository{}
	seeded := seedProperties(t, repo, 1, "Nairobi", 30000)

	svc := NewPropertyService(repo, nil, &testLogger)

	p, err := svc.Update(context.Background(), seeded[0].ID, repository.PropertyPatch{})
	require.NoError(t, err)
	assert.Equal(t, seeded[0].ID, p.ID)
	assert.Equal(t, seeded[0].Price, p.Price)
}

func TestPropertyDeleteIsIdempotent(t *testing.T) {
	repo := &fakePropertyRepository{}
	seeded := seedProperties(t, repo, 1, "Nairobi", 30000)

	svc := NewPropertyService(repo, nil, &testLogger)

	require.NoError(t, svc.Delete(context.Background(), seeded[0].ID))
	require.NoError(t, svc.Delete(context.Background(), seeded[0].ID))
	require.NoError(t, svc.Delete(context.Background(), "not-a-uuid"))

	count, err := repo.Count(context.Background(), repository.PropertyFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
