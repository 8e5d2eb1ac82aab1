package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nyumbahomes/nyumba/internal/errs"
	"github.com/nyumbahomes/nyumba/internal/identity"
	"github.com/nyumbahomes/nyumba/internal/server"
)

func newAuthFixture(t *testing.T) (*AuthMiddleware, *identity.TokenIssuer) {
	t.Helper()

	logger := zerolog.Nop()
	issuer := identity.NewTokenIssuer("test-secret", time.Hour)

	return NewAuthMiddleware(&server.Server{Logger: &logger}, issuer), issuer
}

func invoke(mw echo.MiddlewareFunc, authorization string) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	err := mw(func(c echo.Context) error { return nil })(c)
	return c, err
}

func TestRequireAdminStoresIdentity(t *testing.T) {
	auth, issuer := newAuthFixture(t)

	token, err := issuer.Issue("admin-1", "ops@nyumbahomes.co.ke", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, err := invoke(auth.RequireAdmin, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}

	id, ok := GetIdentity(c)
	if !ok {
		t.Fatal("expected identity in context")
	}
	if id.Subject != "admin-1" {
		t.Fatalf("expected subject admin-1, got %q", id.Subject)
	}
	if !id.IsAdmin() {
		t.Fatal("expected admin role on identity")
	}
	if got := GetUserID(c); got != "admin-1" {
		t.Fatalf("expected user id admin-1, got %q", got)
	}
}

func TestRequireAdminRejectsMissingAndBadTokens(t *testing.T) {
	auth, _ := newAuthFixture(t)
	forged, err := identity.NewTokenIssuer("other-secret", time.Hour).Issue("admin-1", "ops@nyumbahomes.co.ke", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for name, header := range map[string]string{
		"no header":     "",
		"not bearer":    "Basic abc123",
		"garbage token": "Bearer not-a-jwt",
		"wrong signer":  "Bearer " + forged,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := invoke(auth.RequireAdmin, header)

			var httpErr *errs.HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("expected HTTPError, got %v", err)
			}
			if httpErr.Status != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", httpErr.Status)
			}
		})
	}
}

func TestRequireSuperAdminChecksClaim(t *testing.T) {
	auth, issuer := newAuthFixture(t)

	regular, err := issuer.Issue("admin-1", "ops@nyumbahomes.co.ke", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	super, err := issuer.Issue("admin-2", "root@nyumbahomes.co.ke", true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth.RequireAdmin(auth.RequireSuperAdmin(next))
	}

	_, err = invoke(chain, "Bearer "+regular)
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 for regular admin, got %d", httpErr.Status)
	}

	if _, err := invoke(chain, "Bearer "+super); err != nil {
		t.Fatalf("expected super admin to pass, got %v", err)
	}
}
