package cli

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	sync.Mutex
	loggedIn bool

	calls []string
	args  map[string][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Home(ctx context.Context) error { return f.record("home", nil) }
func (f *fakeExec) Search(ctx context.Context, args []string) error {
	return f.record("search", args)
}
func (f *fakeExec) Open(ctx context.Context, args []string) error { return f.record("open", args) }
func (f *fakeExec) Categories(ctx context.Context, args []string) error {
	return f.record("categories", args)
}
func (f *fakeExec) Category(ctx context.Context, args []string) error {
	return f.record("category", args)
}
func (f *fakeExec) Back(ctx context.Context) error    { return f.record("back", nil) }
func (f *fakeExec) Forward(ctx context.Context) error { return f.record("forward", nil) }
func (f *fakeExec) Reload(ctx context.Context) error  { return f.record("reload", nil) }
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	return f.record("show", args)
}
func (f *fakeExec) Fav(ctx context.Context, args []string) error  { return f.record("fav", args) }
func (f *fakeExec) Rate(ctx context.Context, args []string) error { return f.record("rate", args) }
func (f *fakeExec) Comment(ctx context.Context) error             { return f.record("comment", nil) }
func (f *fakeExec) EditComment(ctx context.Context, args []string) error {
	return f.record("editcomment", args)
}
func (f *fakeExec) DeleteComment(ctx context.Context, args []string) error {
	return f.record("deletecomment", args)
}
func (f *fakeExec) Favorites(ctx context.Context) error { return f.record("favorites", nil) }
func (f *fakeExec) Unfav(ctx context.Context, args []string) error {
	return f.record("unfav", args)
}
func (f *fakeExec) History(ctx context.Context) error { return f.record("history", nil) }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Signup(ctx context.Context) error { return f.record("signup", nil) }
func (f *fakeExec) Forgot(ctx context.Context) error { return f.record("forgot", nil) }
func (f *fakeExec) Reset(ctx context.Context, args []string) error {
	return f.record("reset", args)
}
func (f *fakeExec) Contact(ctx context.Context) error { return f.record("contact", nil) }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(ctx context.Context) error { return f.record("whoami", nil) }
func (f *fakeExec) Stats(ctx context.Context) error  { return f.record("stats", nil) }

// captureOutput swaps printlnFn for a recorder.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(strings.TrimSuffix(toString(v), "\n"))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func TestRunREPL_DispatchesCommandsWithArgs(t *testing.T) {
	captureOutput(t)

	input := strings.Join([]string{
		"help",
		"search  chocolate   cake ",
		"category Cream Puff",
		"show 12",
		"fav 12",
		"rate 4",
		"back",
		"forward",
		"reset tok-1",
		"",
		"whoami",
		"exit",
		"home",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(guest)" }, rdr(input))

	require.Equal(t, []string{
		"search", "category", "show", "fav", "rate", "back", "forward", "reset", "whoami",
	}, exec.calls)
	require.Equal(t, []string{"chocolate", "cake"}, exec.args["search"])
	require.Equal(t, []string{"Cream", "Puff"}, exec.args["category"])
	require.Equal(t, []string{"12"}, exec.args["show"])
	require.Equal(t, []string{"tok-1"}, exec.args["reset"])
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("help\nlogin\nhelp\nquit\n"))

	require.Contains(t, *out, helpGuest)
	require.Contains(t, *out, helpUser)
	require.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_UnknownCommandAndEOF(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("foobar\nstats"))

	require.Contains(t, *out, "Unknown command: foobar")
	require.Equal(t, []string{"stats"}, exec.calls)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	captureOutput(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("home\nhome\nhome\n"))

	require.Equal(t, []string{"home"}, exec.calls)
}
