package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyumbahomes/nyumba/internal/identity"
	"github.com/nyumbahomes/nyumba/internal/model"
)

func clerkIdentity() identity.Identity {
	return identity.Identity{
		Subject:  "user_2abc",
		Email:    "wanjiku@example.com",
		Role:     identity.RoleUser,
		Provider: identity.ProviderClerk,
	}
}

func TestEnsureFromIdentityProvisionsOnce(t *testing.T) {
	users := &fakeUserRepository{}
	svc := NewUserService(users, &fakePropertyRepository{}, &testLogger)

	first, err := svc.EnsureFromIdentity(context.Background(), clerkIdentity())
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", first.ClerkID)
	assert.Equal(t, model.UserRoleUser, first.Role)
	assert.True(t, first.Verified)

	second, err := svc.EnsureFromIdentity(context.Background(), clerkIdentity())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, users.items, 1)
}

func TestSavePropertyDeduplicates(t *testing.T) {
	users := &fakeUserRepository{}
	properties := &fakePropertyRepository{}
	seeded := seedProperties(t, properties, 1, "Nairobi", 45000)
	svc := NewUserService(users, properties, &testLogger)

	u, err := svc.SaveProperty(context.Background(), clerkIdentity(), seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{seeded[0].ID}, u.SavedProperties)

	u, err = svc.SaveProperty(context.Background(), clerkIdentity(), seeded[0].ID)
	require.NoError(t, err)
	assert.Len(t, u.SavedProperties, 1)
}

func TestSavePropertyRejectsUnknownListing(t *testing.T) {
	svc := NewUserService(&fakeUserRepository{}, &fakePropertyRepository{}, &testLogger)

	_, err := svc.SaveProperty(context.Background(), clerkIdentity(), "3f1f8a5e-0000-4000-8000-000000000000")
	require.Error(t, err)

	_, err = svc.SaveProperty(context.Background(), clerkIdentity(), "not-a-uuid")
	require.Error(t, err)
}

func TestUnsavePropertyIsIdempotent(t *testing.T) {
	users := &fakeUserRepository{}
	properties := &fakePropertyRepository{}
	seeded := seedProperties(t, properties, 1, "Nairobi", 45000)
	svc := NewUserService(users, properties, &testLogger)

	_, err := svc.SaveProperty(context.Background(), clerkIdentity(), seeded[0].ID)
	require.NoError(t, err)

	u, err := svc.UnsaveProperty(context.Background(), clerkIdentity(), seeded[0].ID)
	require.NoError(t, err)
	assert.Empty(t, u.SavedProperties)

	u, err = svc.UnsaveProperty(context.Background(), clerkIdentity(), seeded[0].ID)
	require.NoError(t, err)
	assert.Empty(t, u.SavedProperties)
}

func TestSavedPropertiesReturnsFullRecords(t *testing.T) {
	users := &fakeUserRepository{}
	properties := &fakePropertyRepository{}
	seeded := seedProperties(t, properties, 3, "Nairobi", 45000)
	svc := NewUserService(users, properties, &testLogger)

	listings, err := svc.SavedProperties(context.Background(), clerkIdentity())
	require.NoError(t, err)
	assert.Empty(t, listings)

	_, err = svc.SaveProperty(context.Background(), clerkIdentity(), seeded[0].ID)
	require.NoError(t, err)
	_, err = svc.SaveProperty(context.Background(), clerkIdentity(), seeded[2].ID)
	require.NoError(t, err)

	listings, err = svc.SavedProperties(context.Background(), clerkIdentity())
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.ElementsMatch(t,
		[]string{seeded[0].ID, seeded[2].ID},
		[]string{listings[0].ID, listings[1].ID},
	)
}

func TestUpdateProfilePatchesSparsely(t *testing.T) {
	users := &fakeUserRepository{}
	svc := NewUserService(users, &fakePropertyRepository{}, &testLogger)

	name := "Wanjiku Kamau"
	u, err := svc.UpdateProfile(context.Background(), clerkIdentity(), UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, u.Name)
	assert.Equal(t, "wanjiku@example.com", u.Email)

	phone := "+254700000000"
	u, err = svc.UpdateProfile(context.Background(), clerkIdentity(), UpdateProfileInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, name, u.Name)
	assert.Equal(t, phone, u.Phone)
}
