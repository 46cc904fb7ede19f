package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Reports(ctx context.Context) error
	Mine(ctx context.Context) error
	Search(ctx context.Context) error
	Show(ctx context.Context) error
	Submit(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Users(ctx context.Context) error
	RemoveUser(ctx context.Context) error
	Promote(ctx context.Context) error
	Demote(ctx context.Context) error
	Notifications(ctx context.Context) error
	Read(ctx context.Context) error
	ReadAll(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the Reunite CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("reunite> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printHelp(a)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "r", "reports":
			_ = a.Reports(ctx)

		case "mine":
			_ = a.Mine(ctx)

		case "search":
			_ = a.Search(ctx)

		case "show":
			_ = a.Show(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "users":
			_ = a.Users(ctx)

		case "rmuser":
			_ = a.RemoveUser(ctx)

		case "promote":
			_ = a.Promote(ctx)

		case "demote":
			_ = a.Demote(ctx)

		case "n", "notifications":
			_ = a.Notifications(ctx)

		case "read":
			_ = a.Read(ctx)

		case "readall":
			_ = a.ReadAll(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: register, login, forgot, reset, (r)eports, search, show, exit")
		return
	}
	printlnFn("Available commands: (r)eports, mine, search, show, submit, edit, delete, (n)otifications, read, readall, logout, exit")
	if a.isAdmin() {
		printlnFn("Admin commands: users, rmuser, promote, demote")
	}
}
