// Package common contains constants and sentinel errors shared by the
// client packages.
package common

// Session store keys.
const (
	SessionTokenKey = "auth_token"
	CurrentUserKey  = "current_user"
)

// RequestIDHeaderName carries a per-request correlation id on API calls.
const RequestIDHeaderName = "X-Request-ID"

// Navigation targets used by the views.
const (
	RouteHome         = "/"
	RouteLogin        = "/login"
	RouteBooking      = "/booking"
	RouteAppointments = "/appointments"
	RouteVerifyEmail  = "/verify-email"
)
