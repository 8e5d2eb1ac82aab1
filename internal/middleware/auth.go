package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/labstack/echo/v4"

	"github.com/nyumbahomes/nyumba/internal/errs"
	"github.com/nyumbahomes/nyumba/internal/identity"
	"github.com/nyumbahomes/nyumba/internal/server"
)

// AuthMiddleware enforces authentication for the two caller populations:
// back-office admins carry locally-signed tokens verified by the issuer,
// end users carry Clerk session tokens verified by the Clerk SDK. Both
// schemes resolve to an identity.Identity stored in Echo context, so
// handlers never care which scheme authenticated the caller.
type AuthMiddleware struct {
	server *server.Server
	issuer *identity.TokenIssuer
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server, issuer *identity.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		issuer: issuer,
	}
}

// RequireAdmin guards back-office routes. It verifies the bearer token
// against the local issuer and stores the admin identity in Echo context.
func (auth *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		id, err := auth.issuer.Verify(token)
		if err != nil {
			auth.server.Logger.Warn().
				Str("request_id", GetRequestID(c)).
				Err(err).
				Msg("admin token rejected")
			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		c.Set(IdentityKey, id)
		c.Set(UserIDKey, id.Subject)

		return next(c)
	}
}

// RequireSuperAdmin guards provisioning routes. It must run after
// RequireAdmin.
func (auth *AuthMiddleware) RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := GetIdentity(c)
		if !ok {
			return errs.NewUnauthorizedError("Unauthorized", false)
		}
		if !id.SuperAdmin {
			return errs.NewForbiddenError("Super admin access required", true)
		}
		return next(c)
	}
}

// RequireUser guards end-user routes using Clerk. Clerk's middleware
// parses and verifies the Authorization header and populates the request
// context with session claims; those claims become a hosted identity.
func (auth *AuthMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)

				response := map[string]any{
					"code":     "UNAUTHORIZED",
					"message":  "Unauthorized",
					"override": false,
					"status":   http.StatusUnauthorized,
				}

				if err := json.NewEncoder(w).Encode(response); err != nil {
					auth.server.Logger.Error().
						Err(err).
						Str("function", "RequireUser").
						Msg("failed to write JSON response")
				}
			}))))(
		func(c echo.Context) error {
			start := time.Now()

			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok {
				auth.server.Logger.Error().
					Str("function", "RequireUser").
					Str("request_id", GetRequestID(c)).
					Dur("duration", time.Since(start)).
					Msg("could not get session claims from context")

				return errs.NewUnauthorizedError("Unauthorized", false)
			}

			id := identity.Identity{
				Subject:  claims.Subject,
				Role:     identity.RoleUser,
				Provider: identity.ProviderClerk,
			}

			c.Set(IdentityKey, id)
			c.Set(UserIDKey, id.Subject)

			return next(c)
		})
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
