package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/dmitrijs2005/hopekeeper/internal/logging"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

const tryAgain = "Something went wrong. Please try again."

// executor runs one command line split into words.
type executor interface {
	Execute(ctx context.Context, args []string) error
}

// runREPL reads a line from reader, splits it into words and hands them to
// e until EOF, "exit" or "quit". A failing command prints its error; a
// panicking one prints tryAgain and logs the stack, and the loop goes on.
func runREPL(ctx context.Context, e executor, statusFn func() string, reader *bufio.Reader, logger logging.Logger) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("hk %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if err := safeExecute(ctx, e, parts, logger); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func safeExecute(ctx context.Context, e executor, args []string, logger logging.Logger) (err error) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "command panicked", "command", args[0], "panic", fmt.Sprint(p), "stack", string(debug.Stack()))
			err = errors.New(tryAgain)
		}
	}()
	return e.Execute(ctx, args)
}

func (a *App) getStatus() string {
	var parts []string
	if id := a.Identity(); id != nil {
		parts = append(parts, id.Email)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if a.isLoggedIn() {
		if n := a.queue.Len(context.Background(), a.userID()); n > 0 {
			parts = append(parts, fmt.Sprintf("%d queued", n))
		}
	}
	if n := a.Settings().Unread(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d unread", n))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ") "
}

// Root prints the banner and runs the REPL on the app's input.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to HopeKeeper (type 'help' for commands)")
	a.println("In crisis? Type 'crisis' for immediate help.")
	runREPL(ctx, a, a.getStatus, a.reader, a.logger)
}
