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
	List(ctx context.Context) error
	Reload(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Show(ctx context.Context, id string) error
	Open(ctx context.Context, path string) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist            show the user list
  reload            fetch the user list again
  search [term]     filter the list by name (no term clears the filter)
  show <id>         show a single user
  open <path>       navigate to "/" or "/user/{id}"
  create            create a new user
  edit [id]         edit a listed user (defaults to the user on screen)
  delete <id>       delete a user
  close             discard the open create or edit form
  exit | quit       leave the program`

// runREPL starts a simple read–eval–print loop for the user-management CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the rest of the line as the argument.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// The prompt comes from promptFn; an empty prompt is not printed, which is
// how piped (non-interactive) input runs quietly.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if p := promptFn(); p != "" {
			printlnFn(p)
		}
		line, err := readLine(reader)
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "reload":
			_ = a.Reload(ctx)

		case "search":
			_ = a.Search(ctx, arg)

		case "show":
			if arg == "" {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, arg)

		case "open":
			if arg == "" {
				printlnFn("Usage: open <path>")
				continue
			}
			_ = a.Open(ctx, arg)

		case "create":
			_ = a.Create(ctx)

		case "edit":
			_ = a.Edit(ctx, arg)

		case "delete":
			if arg == "" {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, arg)

		case "close":
			_ = a.Close(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
