// Package validation binds and validates incoming request payloads.
//
// Request types implement Validatable (usually by running validator struct
// tags) and the handler pipeline calls BindAndValidate before any business
// logic runs. Failures come back as 400 HTTPErrors carrying field-level
// errors the client can render next to form inputs.
package validation
