package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App implements it.
type execIface interface {
	hasToken() bool
	SetToken(ctx context.Context, arg string) error
	UnsetToken(ctx context.Context) error
	Upload(ctx context.Context, arg string) error
	WhoAmI(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a. It returns
// on EOF, on exit/quit, or when ctx is cancelled. Handler errors are ignored
// here; handlers print their own outcome.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("gitdrop %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		cmd, arg := splitCommand(scanner.Text())
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			printlnFn(msgHelp)

		case "ghset":
			_ = a.SetToken(ctx, arg)

		case "ghunset":
			_ = a.UnsetToken(ctx)

		case "ghupload":
			_ = a.Upload(ctx, arg)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn(msgBye)
			return

		default:
			printlnFn(msgUnknownCommand, cmd)
		}
	}
}

// splitCommand returns the first word of line and the raw remainder after
// the whitespace that follows it. Inner spacing of the remainder is kept.
func splitCommand(line string) (cmd, arg string) {
	line = strings.TrimRight(line, "\r")
	line = strings.TrimLeft(line, " \t")
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeft(line[i:], " \t")
}
