package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. The lock is held
// while a command runs so background reloads never interleave with it.
type execIface interface {
	sync.Locker

	isLoggedIn() bool

	Home(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error
	Back(ctx context.Context) error
	Forward(ctx context.Context) error
	Reload(ctx context.Context) error

	Show(ctx context.Context, args []string) error
	Fav(ctx context.Context, args []string) error
	Rate(ctx context.Context, args []string) error
	Comment(ctx context.Context) error
	EditComment(ctx context.Context, args []string) error
	DeleteComment(ctx context.Context, args []string) error

	Favorites(ctx context.Context) error
	Unfav(ctx context.Context, args []string) error
	History(ctx context.Context) error

	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context, args []string) error
	Contact(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Stats(ctx context.Context) error
}

const (
	helpGuest = "Available commands: home, search <text>, open <location>, categories [next|prev], category <name>, back, forward, reload, " +
		"show <id>, fav <id>, login, signup, forgot, reset [token], contact, stats, exit"
	helpUser = "Available commands: home, search <text>, open <location>, categories [next|prev], category <name>, back, forward, reload, " +
		"show <id>, fav [id], rate <1-5>, comment, editcomment <id>, deletecomment <id>, " +
		"favorites, unfav <id>, history, whoami, contact, logout, stats, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// The first token selects the command and the rest are its arguments.
// Handlers print their own results, so returned errors are dropped here.
// The prompt shows statusFn's text.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("dessertai %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if !execute(ctx, a, parts[0], parts[1:]) {
			printlnFn("Bye!")
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// execute runs one command under the lock and reports whether the REPL
// should keep going.
func execute(ctx context.Context, a execIface, cmd string, args []string) bool {
	a.Lock()
	defer a.Unlock()

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpUser)
		} else {
			printlnFn(helpGuest)
		}

	case "home":
		_ = a.Home(ctx)
	case "s", "search":
		_ = a.Search(ctx, args)
	case "open":
		_ = a.Open(ctx, args)
	case "categories":
		_ = a.Categories(ctx, args)
	case "category":
		_ = a.Category(ctx, args)
	case "back":
		_ = a.Back(ctx)
	case "forward":
		_ = a.Forward(ctx)
	case "reload":
		_ = a.Reload(ctx)

	case "show":
		_ = a.Show(ctx, args)
	case "fav":
		_ = a.Fav(ctx, args)
	case "rate":
		_ = a.Rate(ctx, args)
	case "comment":
		_ = a.Comment(ctx)
	case "editcomment":
		_ = a.EditComment(ctx, args)
	case "deletecomment":
		_ = a.DeleteComment(ctx, args)

	case "favorites":
		_ = a.Favorites(ctx)
	case "unfav":
		_ = a.Unfav(ctx, args)
	case "history":
		_ = a.History(ctx)

	case "login":
		_ = a.Login(ctx)
	case "signup":
		_ = a.Signup(ctx)
	case "forgot":
		_ = a.Forgot(ctx)
	case "reset":
		_ = a.Reset(ctx, args)
	case "contact":
		_ = a.Contact(ctx)
	case "logout":
		_ = a.Logout(ctx)
	case "whoami":
		_ = a.WhoAmI(ctx)
	case "stats":
		_ = a.Stats(ctx)

	case "exit", "quit":
		return false

	default:
		printlnFn("Unknown command:", cmd)
	}
	return true
}
