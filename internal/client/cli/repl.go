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
	Google(ctx context.Context) error
	Logout(ctx context.Context) error
	Transcribe(ctx context.Context) error
	History(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Plans(ctx context.Context) error
	Subscribe(ctx context.Context, args []string) error
	Usage(ctx context.Context) error
	CancelPlan(ctx context.Context) error
	Account(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Admin(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the transcribeThis CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate with email and password
//	  - google         — authenticate via Google in a browser
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - transcribe     — upload an audio file for transcription
//	  - history [page] — list past transcriptions
//	  - show <id>      — show a single transcription
//	  - delete <id>    — delete a transcription
//	  - plans          — list available plans
//	  - subscribe <id> — switch to a plan
//	  - usage          — show usage against the current plan
//	  - cancel         — cancel the paid subscription
//	  - account        — show account stats
//	  - profile        — edit name and email
//	  - passwd         — change password
//	  - admin <cmd>    — admin console (admins only)
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are reported inline; handlers print
// their own success output. This keeps the REPL loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tt %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				cmds := "Available commands: transcribe, history, show, delete, plans, subscribe, usage, cancel, account, profile, passwd, logout, exit"
				if a.isAdmin() {
					cmds += ", admin"
				}
				printlnFn(cmds)
			} else {
				printlnFn("Available commands: register, login, google, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "google":
			err = a.Google(ctx)

		case "transcribe":
			err = a.Transcribe(ctx)

		case "history":
			err = a.History(ctx, args)

		case "show":
			err = a.Show(ctx, args)

		case "delete":
			err = a.Delete(ctx, args)

		case "plans":
			err = a.Plans(ctx)

		case "subscribe":
			err = a.Subscribe(ctx, args)

		case "usage":
			err = a.Usage(ctx)

		case "cancel":
			err = a.CancelPlan(ctx)

		case "account":
			err = a.Account(ctx)

		case "profile":
			err = a.EditProfile(ctx)

		case "passwd":
			err = a.ChangePassword(ctx)

		case "admin":
			err = a.Admin(ctx, args)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
