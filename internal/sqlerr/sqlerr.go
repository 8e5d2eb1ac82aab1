// Package sqlerr normalizes PostgreSQL driver errors.
//
// It maps pgconn SQLSTATE codes into a small category enum and converts
// them into errs.HTTPError values with machine codes and messages a client
// can act on (unique violation -> "already exists", foreign key ->
// "referenced record does not exist", and so on).
package sqlerr
