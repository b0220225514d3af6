package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Verify(ctx context.Context, args []string) error
	Resend(ctx context.Context, args []string) error
	Forgot(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	FAQ(ctx context.Context, args []string) error
	Paid(ctx context.Context) error
	Home(ctx context.Context) error
	Booking(ctx context.Context) error
	Bookings(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the spabook client.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt comes from promptFn; an empty prompt is not printed. Commands:
//
//	help                          show available commands
//	verify <link|token>           open the email verification page
//	resend [email]                resend the verification email (after a failed verification)
//	forgot [email]                request a password reset link
//	search [-c <category>] text   search services
//	faq [-c <category>] [text]    browse the FAQ
//	paid                          open the payment confirmation page
//	home | booking | bookings     navigate (on a page, uses the page's own action)
//	whoami                        show the signed-in user
//	logout                        drop the stored session
//	exit | quit                   leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if p := promptFn(); p != "" {
			printlnFn(p)
		}

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: verify, search, faq, paid, home, booking, bookings, whoami, logout, exit")
			} else {
				printlnFn("Available commands: verify, resend, forgot, search, faq, home, exit")
			}

		case "verify":
			_ = a.Verify(ctx, args)

		case "resend":
			_ = a.Resend(ctx, args)

		case "forgot":
			_ = a.Forgot(ctx, args)

		case "s", "search":
			_ = a.Search(ctx, args)

		case "faq":
			_ = a.FAQ(ctx, args)

		case "paid":
			_ = a.Paid(ctx)

		case "home":
			_ = a.Home(ctx)

		case "booking":
			_ = a.Booking(ctx)

		case "bookings":
			_ = a.Bookings(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
