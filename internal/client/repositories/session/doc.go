// Package session persists the client's session key/value pairs (auth token,
// serialized current user) in the local SQLite database.
//
// Get returns ok=false for a missing key rather than an error. Set is an
// upsert, so concurrent writers are last-write-wins.
package session
