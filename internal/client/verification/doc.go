// Package verification drives the email verification page.
//
// A Controller is created when the page is mounted, started once with the
// navigation path that carries the token, and closed when the page is torn
// down. The token exchange runs at most once per controller. Everything the
// controller does after that (redirects, reloads) is scheduled through a
// timer.Group, so Close is enough to make the page inert.
//
//	Loading ─┬─ empty token ───────────────▶ Error
//	         ├─ exchange failed ───────────▶ Error ──resend──▶ Error
//	         ├─ AlreadyVerified ───────────▶ AlreadyVerified ──2s──▶ /login
//	         ├─ Verified (session saved) ──▶ Confirmed ──home|booking──100ms──▶ reload
//	         └─ PlainSuccess ──────────────▶ Success
package verification
