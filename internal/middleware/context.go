package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/nyumbahomes/nyumba/internal/identity"
	"github.com/nyumbahomes/nyumba/internal/logger"
	"github.com/nyumbahomes/nyumba/internal/server"
)

const (
	// IdentityKey stores the authenticated identity in Echo context.
	IdentityKey = "identity"

	// UserIDKey stores the caller's subject for log correlation.
	UserIDKey = "user_id"

	// LoggerKey stores the request-scoped logger.
	LoggerKey = "logger"
)

// ContextEnhancer builds a request-scoped logger carrying request_id,
// method, path, ip, trace ids when a New Relic transaction exists, and the
// caller's subject once auth middleware has run. The logger is stored in
// both Echo context and the request's Go context so repository code that
// only sees context.Context can log with correlation fields.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a ContextEnhancer.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the Echo middleware.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if userID := GetUserID(c); userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), LoggerKey, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetIdentity retrieves the authenticated identity set by auth middleware.
func GetIdentity(c echo.Context) (identity.Identity, bool) {
	id, ok := c.Get(IdentityKey).(identity.Identity)
	return id, ok
}

// GetUserID reads the caller's subject from Echo context, or "" when no
// auth middleware ran.
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger retrieves the request-scoped logger from Echo context. It
// returns a no-op logger when EnhanceContext did not run so callers never
// hit a nil pointer.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	nop := zerolog.Nop()
	return &nop
}
