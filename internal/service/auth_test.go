package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyumbahomes/nyumba/internal/identity"
	"github.com/nyumbahomes/nyumba/internal/repository"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeAdminRepository, *identity.TokenIssuer) {
	t.Helper()
	admins := &fakeAdminRepository{}
	issuer := identity.NewTokenIssuer("test-secret", time.Hour)

	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	_, err = admins.Create(context.Background(), repository.CreateAdminParams{
		Email:        "ops@nyumbahomes.co.ke",
		PasswordHash: hash,
		SuperAdmin:   true,
	})
	require.NoError(t, err)

	return NewAuthService(admins, issuer, &testLogger), admins, issuer
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _, issuer := newAuthFixture(t)

	result, err := svc.Login(context.Background(), "ops@nyumbahomes.co.ke", "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	id, err := issuer.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Admin.ID, id.Subject)
	assert.True(t, id.IsAdmin())
	assert.True(t, id.SuperAdmin)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, errWrongPassword := svc.Login(context.Background(), "ops@nyumbahomes.co.ke", "wrong")
	require.Error(t, errWrongPassword)

	_, errUnknownEmail := svc.Login(context.Background(), "nobody@nyumbahomes.co.ke", "correct horse battery")
	require.Error(t, errUnknownEmail)

	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestMeReturnsAdminBehindIdentity(t *testing.T) {
	svc, admins, _ := newAuthFixture(t)

	admin := admins.items[0]
	me, err := svc.Me(context.Background(), identity.Identity{Subject: admin.ID, Role: identity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, admin.Email, me.Email)
}
