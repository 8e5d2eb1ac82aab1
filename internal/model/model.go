// Package model defines the domain entities persisted by the repository
// layer and exposed, camelCase-encoded, through the HTTP API.
//
// Database columns are snake_case; the JSON tags here are the single place
// where the external (wire) shape of each entity is decided.
package model
