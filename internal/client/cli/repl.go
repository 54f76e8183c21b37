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
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Characters(ctx context.Context, args []string) error
	Character(ctx context.Context, args []string) error
	Journeys(ctx context.Context) error
	AddJourney(ctx context.Context) error
	Inbox(ctx context.Context) error
	Send(ctx context.Context) error
	Portrait(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: signup, login, characters [query], character <id>, exit"
	helpLoggedIn  = "Available commands: whoami, characters [query], character <id>, journeys, addjourney, inbox, send, portrait <id> <file>, logout, exit"
)

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. Command errors are printed and the loop goes on.
//
// Commands mirror the pages of the web front end:
//
//	help                  show available commands
//	signup | login        create an account / authenticate
//	logout | whoami       end the session / show the current user
//	characters [query]    list or search characters
//	character <id>        show one character
//	journeys | addjourney list / record journeys
//	inbox | send          read / write messages
//	portrait <id> <file>  upload a portrait for your character
//	exit | quit           leave the program
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tardis %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "characters", "search":
			cmdErr = a.Characters(ctx, args)

		case "character":
			if len(args) != 1 {
				printlnFn("Usage: character <id>")
				continue
			}
			cmdErr = a.Character(ctx, args)

		case "journeys", "history":
			cmdErr = a.Journeys(ctx)

		case "addjourney":
			cmdErr = a.AddJourney(ctx)

		case "inbox":
			cmdErr = a.Inbox(ctx)

		case "send":
			cmdErr = a.Send(ctx)

		case "portrait":
			if len(args) != 2 {
				printlnFn("Usage: portrait <id> <file>")
				continue
			}
			cmdErr = a.Portrait(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
