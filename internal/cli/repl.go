package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophdiary/internal/diary"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isUnlocked() bool
	Unlock(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Show(ctx context.Context, date string) error
	Write(ctx context.Context, date string) error
	Delete(ctx context.Context, date string) error
}

// runREPL reads commands from reader and dispatches them to a until "exit",
// end of input or cancellation of ctx.
//
// The first word of a line is the command; for search the rest of the line
// is the query, for show, write and delete it is the date. Errors returned
// by handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		printFn(fmt.Sprintf("diary (%s)> ", statusFn()))

		line, readErr := reader.ReadString('\n')
		if readErr != nil && strings.TrimSpace(line) == "" {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		rest := strings.TrimSpace(strings.TrimSpace(line)[len(cmd):])

		var err error
		switch cmd {
		case "help":
			if a.isUnlocked() {
				printlnFn("Available commands: (l)ist, search <text>, show [date], write [date], delete [date], unlock, exit")
			} else {
				printlnFn("Available commands: unlock, exit")
			}

		case "unlock":
			err = a.Unlock(ctx)

		case "l", "list":
			err = a.List(ctx)

		case "search", "find":
			err = a.Search(ctx, rest)

		case "show":
			err = a.Show(ctx, rest)

		case "write":
			err = a.Write(ctx, rest)

		case "delete":
			err = a.Delete(ctx, rest)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			reportError(err)
		}
		if readErr != nil {
			return
		}
	}
}

func reportError(err error) {
	switch {
	case errors.Is(err, diary.ErrNotUnlocked):
		printlnFn("Diary is locked, type 'unlock' first")
	case errors.Is(err, io.EOF):
		printlnFn()
	default:
		printlnFn("Error:", err)
	}
}
