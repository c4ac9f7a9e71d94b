package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printFn and printlnFn are test seams for REPL output. In tests, replace
// them with stubs.
var (
	printFn   = fmt.Print
	printlnFn = fmt.Println
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Passwd(ctx context.Context) error
	CheckEmail(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Menu(ctx context.Context) error
	Routes(ctx context.Context) error
	Theme(ctx context.Context, args []string) error
	Status(ctx context.Context) error
}

const (
	helpGuest  = "Available commands: register, login, check-email <email>, open <path>, routes, theme [light|dark|toggle], status, exit"
	helpMember = "Available commands: whoami, edit [name=value...], passwd, menu, open <path>, routes, theme [light|dark|toggle], status, logout, exit"
)

// runREPL starts a read–eval–print loop for the EmployEra CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                 — show available commands
//	  - register             — create an account
//	  - login                — sign in
//	  - check-email <email>  — check whether an email is already registered
//
//	Logged in:
//	  - whoami               — show the profile
//	  - edit [name=value...] — change profile fields
//	  - passwd               — change the password
//	  - menu                 — show the menu of the account type
//	  - logout               — sign out
//
//	Always:
//	  - open <path>          — open a view, e.g. "open /jobs"
//	  - routes               — list views and who may open them
//	  - theme [light|dark|toggle]
//	  - status               — show connection and session details
//	  - exit | quit          — leave the program
//
// Command errors are printed and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("employera %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			printlnFn()
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
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			report(a.Register(ctx))

		case "login":
			report(a.Login(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "whoami":
			report(a.WhoAmI(ctx))

		case "edit":
			report(a.Edit(ctx, args))

		case "passwd":
			report(a.Passwd(ctx))

		case "check-email":
			report(a.CheckEmail(ctx, args))

		case "open":
			report(a.Open(ctx, args))

		case "menu":
			report(a.Menu(ctx))

		case "routes":
			report(a.Routes(ctx))

		case "theme":
			report(a.Theme(ctx, args))

		case "status":
			report(a.Status(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err)
	}
}
