package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/dmitrijs2005/dessertai/internal/client/config"
	"github.com/dmitrijs2005/dessertai/internal/client/favorites"
	"github.com/dmitrijs2005/dessertai/internal/client/gateway"
	"github.com/dmitrijs2005/dessertai/internal/client/metrics"
	"github.com/dmitrijs2005/dessertai/internal/client/models"
	"github.com/dmitrijs2005/dessertai/internal/client/reconcile"
	"github.com/dmitrijs2005/dessertai/internal/client/search"
	"github.com/dmitrijs2005/dessertai/internal/client/services"
	"github.com/dmitrijs2005/dessertai/internal/client/session"
	"github.com/dmitrijs2005/dessertai/internal/client/storage"
	"github.com/dmitrijs2005/dessertai/internal/client/views"
	"github.com/dmitrijs2005/dessertai/internal/filex"
	"github.com/dmitrijs2005/dessertai/internal/logging"
)

const (
	screenHome      = "home"
	screenDetail    = "detail"
	screenFavorites = "favorites"
	screenHistory   = "history"
)

// screen is a mounted view. load fetches and prints it and is re-run when
// the view is reloaded.
type screen struct {
	name string
	load func(ctx context.Context) error
}

type App struct {
	sync.Mutex

	config   *config.Config
	log      logging.Logger
	closer   io.Closer
	sessions *session.Manager
	api      *gateway.Client
	metrics  *metrics.Metrics
	account  services.AccountService

	dispatch *search.Dispatcher
	favs     *favorites.Set
	grid     *views.Grid
	detail   *views.Detail
	favList  *views.FavoritesList
	recent   *views.RecentSearches
	slider   *views.CategorySlider

	watcher     *session.Watcher
	current     screen
	gen         uint64
	unsubscribe func()

	reader *bufio.Reader
	out    io.Writer

	closeOnce sync.Once
	closeErr  error
}

// NewApp opens the local store at c.StorePath and wires the client. A nil
// logger discards everything.
func NewApp(ctx context.Context, c *config.Config, logger *slog.Logger) (*App, error) {
	if _, err := filex.EnsureParentDir(c.StorePath); err != nil {
		return nil, err
	}
	store, err := storage.Open(ctx, c.StorePath)
	if err != nil {
		return nil, err
	}
	app, err := newApp(c, store, logger, os.Stdin, os.Stdout)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	app.closer = store
	return app, nil
}

func newApp(c *config.Config, store storage.Store, logger *slog.Logger, in io.Reader, out io.Writer) (*App, error) {
	var log logging.Logger = logging.Discard()
	var httpLog *slog.Logger
	if logger != nil {
		sl := logging.NewSlogLogger(logger)
		log, httpLog = sl, sl.Slog()
	}

	sessions := session.NewManager(store, log.With("component", "session"))
	m := metrics.New()

	api, err := gateway.New(gateway.Options{
		BaseURL:  c.APIBaseURL,
		Timeout:  c.RequestTimeout,
		RetryMax: c.RetryMax,
		Logger:   httpLog,
		Metrics:  m,
		Token:    sessions.Token,
	})
	if err != nil {
		return nil, err
	}

	rec := &reconcile.Reconciler{Ratings: api, Logger: log.With("component", "reconcile"), Metrics: m}
	favs := favorites.NewSet(api, sessions)
	viewLog := log.With("component", "views")
	grid := &views.Grid{
		Reconciler: rec,
		Favorites:  favs,
		FavAPI:     api,
		History:    api,
		Sessions:   sessions,
		Logger:     viewLog,
	}

	a := &App{
		config:   c,
		log:      log,
		sessions: sessions,
		api:      api,
		metrics:  m,
		account:  services.NewAccountService(api, sessions, log.With("component", "account")),
		dispatch: &search.Dispatcher{API: api, HomeLimit: c.HomeLimit},
		favs:     favs,
		grid:     grid,
		detail: &views.Detail{
			API:       api,
			Favorites: favs,
			FavAPI:    api,
			Sessions:  sessions,
			Logger:    viewLog,
		},
		favList: &views.FavoritesList{API: api, Reconciler: rec, Sessions: sessions},
		recent:  &views.RecentSearches{API: api, Sessions: sessions, Grid: grid},
		slider:  &views.CategorySlider{Categories: search.Categories},
		watcher: &session.Watcher{
			Probe:    sessions.TokenPresent,
			Interval: c.SessionCheckInterval,
			Logger:   log.With("component", "watcher"),
		},
		reader: bufio.NewReader(in),
		out:    out,
	}

	// Signing out in this process forgets favorite markers at once.
	a.unsubscribe = sessions.Subscribe(func(s models.Session) {
		if !s.Authenticated() {
			favs.Reset()
		}
	})
	return a, nil
}

// Run mounts the home screen and blocks in the REPL until the user exits
// or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to DessertAI (type 'help' for commands)")
	a.Lock()
	_ = a.Home(ctx)
	a.Unlock()

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close stops the watcher and releases the local store. Later calls are
// no-ops.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		a.watcher.Stop()
		if a.unsubscribe != nil {
			a.unsubscribe()
		}
		if a.closer != nil {
			a.closeErr = a.closer.Close()
		}
	})
	return a.closeErr
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Authenticated(context.Background())
}

// mount replaces the current screen. The session watcher of the previous
// screen is stopped; a new one runs when the session is present at mount
// time. first, when set, renders the screen instead of s.load.
func (a *App) mount(ctx context.Context, s screen, first func(ctx context.Context) error) error {
	a.watcher.Stop()
	a.gen++
	gen := a.gen
	authenticated := a.sessions.Authenticated(ctx)

	if first == nil {
		first = s.load
	}
	a.current = s
	err := first(ctx)

	a.watcher.Reload = func() { a.sessionLost(ctx, gen) }
	a.watcher.Start(ctx, authenticated)
	return err
}

// sessionLost runs on the watcher goroutine once the persisted credential
// disappears. A screen mounted after the watcher fired is left alone.
func (a *App) sessionLost(ctx context.Context, gen uint64) {
	a.Lock()
	defer a.Unlock()
	if gen != a.gen || ctx.Err() != nil {
		return
	}

	a.favs.Reset()
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Your session has ended. Reloading...")
	_ = a.mount(ctx, a.current, nil)
	fmt.Fprintf(a.out, "dessertai %s> \n", a.status())
}

func (a *App) getStatus() string {
	a.Lock()
	defer a.Unlock()
	return a.status()
}

func (a *App) status() string {
	s, _ := a.sessions.Current(context.Background())
	who := "guest"
	switch {
	case s.SignedIn():
		who = "user " + s.UserID.String()
	case s.Authenticated():
		who = "signed in"
	}

	where := a.current.name
	switch where {
	case screenHome:
		if loc, ok := a.dispatch.History.Current(); ok {
			where = loc.String()
		}
	case screenDetail:
		where = fmt.Sprintf("recipe %d", a.detail.Recipe.ID)
	}
	if where == "" {
		return fmt.Sprintf("(%s)", who)
	}
	return fmt.Sprintf("(%s %s)", who, where)
}

func (a *App) fail(err error) {
	fmt.Fprintln(a.out, "❌ "+gateway.UserMessage(err))
}

func (a *App) ok(msg string) {
	fmt.Fprintln(a.out, "✅ "+msg)
}
