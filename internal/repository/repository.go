// Package repository handles all interactions with the database.
//
// Each entity gets one repository interface with a pgx-backed
// implementation. Reads share a common contract: a sparse filter struct
// (absent fields constrain nothing), find options for sort and pagination,
// and a Count twin that applies the identical predicates without sort or
// pagination. Writes are Create (full record), Update (sparse patch; an
// empty patch degenerates to a fetch) and Delete (reports whether a row
// existed instead of erroring on a missing id).
//
// SQL is assembled by internal/querybuilder, so every filter value travels
// as a bound parameter.
package repository
