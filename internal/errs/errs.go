// Package errs defines the error types returned to API clients.
//
// Every failure that reaches the HTTP boundary is expressed as an HTTPError
// so clients receive one consistent JSON error shape: a machine-readable
// code, a human message, the HTTP status, optional field-level validation
// errors and an optional client action hint.
package errs
