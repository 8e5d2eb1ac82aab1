// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns: the two
// authentication schemes (local admin tokens and Clerk sessions), request
// logging, CORS, rate limiting, tracing and panic recovery.
package middleware
