// Package handler is the HTTP entry point after the router.
//
// Handlers parse and validate requests through the validation package,
// call the appropriate service, and shape the response. Business rules
// live in the service layer, not here.
package handler
