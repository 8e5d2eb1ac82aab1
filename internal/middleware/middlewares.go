package middleware

import (
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/nyumbahomes/nyumba/internal/identity"
	"github.com/nyumbahomes/nyumba/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server so
// router setup receives one wired object.
type Middlewares struct {
	// Global holds cross-API middleware: CORS, request logging,
	// recovery, secure headers, and the global error handler.
	Global *GlobalMiddlewares

	// Auth guards routes: local admin tokens for the back office, Clerk
	// sessions for end users.
	Auth *AuthMiddleware

	// ContextEnhancer enriches each request with a request-scoped
	// logger (request_id, method, path, ip, user and trace metadata).
	ContextEnhancer *ContextEnhancer

	// Tracing provides the New Relic middleware and helpers that attach
	// custom attributes and notice errors on transactions.
	Tracing *TracingMiddleware

	// RateLimit throttles the public write endpoints.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components from the application
// container. With New Relic unconfigured, nrApp stays nil and tracing
// degrades to a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	issuer := identity.NewTokenIssuer(
		s.Config.Auth.SecretKey,
		time.Duration(s.Config.Auth.TokenTTLHours)*time.Hour,
	)

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s, issuer),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
