// Package client contains the client-side building blocks that talk to the
// spa-booking backend and bootstrap local storage.
//
// # Overview
//
//  1. Client is the transport-agnostic API contract used by the views:
//     VerifyEmail, ResendVerificationEmail, ForgotPassword, ListServices,
//     ListFAQs, Ping.
//  2. HTTPClient implements it as JSON over HTTP(S). Every request carries a
//     request id, runs through a circuit breaker, and idempotent reads are
//     retried with exponential backoff. The token exchange is never retried.
//  3. InitDatabase and RunMigrations open the local SQLite session database
//     and apply the embedded goose migrations.
//
// # Error Handling
//
// Non-2xx answers become *APIError, which carries the server message and
// unwraps to ErrUnauthorized, ErrNotFound, ErrUnavailable or ErrRejected.
// Transport failures and an open breaker wrap ErrUnavailable. Use MessageOf to
// pick the text to show the user.
package client
