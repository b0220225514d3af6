// Package cli provides the interactive spabook client.
//
// It wires configuration, the local session store, the booking API and an
// interactive REPL. Each page of the booking site is a controller; the REPL
// mounts one page at a time and tears the previous one down when the user
// (or a page timer) navigates away.
//
// Pages and commands:
//   - verify <link|token>  email verification, then resend / home / booking
//   - forgot [email]       request a password reset link
//   - search, faq          local search over the service catalog and FAQ
//   - paid                 payment confirmation with a redirect countdown
//   - whoami, logout       inspect or drop the stored session
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
