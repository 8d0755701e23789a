package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/dessertai/internal/client/models"
	"github.com/dmitrijs2005/dessertai/internal/client/storage"
	"github.com/dmitrijs2005/dessertai/internal/logging"
)

var (
	ErrNotSignedIn = errors.New("you must be logged in")
	ErrEmptyToken  = errors.New("empty credential token")
)

type Manager struct {
	store storage.Store
	log   logging.Logger

	mu     sync.Mutex
	subs   map[int]func(models.Session)
	nextID int
}

func NewManager(store storage.Store, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{store: store, log: log, subs: map[int]func(models.Session){}}
}

// Current reads the persisted session. Missing keys give empty fields.
func (m *Manager) Current(ctx context.Context) (models.Session, error) {
	token, _, err := m.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("read session token: %w", err)
	}
	uid, _, err := m.store.Get(ctx, storage.KeyUserID)
	if err != nil {
		return models.Session{}, fmt.Errorf("read session user: %w", err)
	}
	return models.Session{Token: token, UserID: models.ID(uid)}, nil
}

// Authenticated reports whether a token is persisted. A read failure is
// logged and reported as false.
func (m *Manager) Authenticated(ctx context.Context) bool {
	ok, err := m.TokenPresent(ctx)
	if err != nil {
		m.log.Warn(ctx, "session check failed", "error", err)
		return false
	}
	return ok
}

// TokenPresent is the liveness probe used by Watcher.
func (m *Manager) TokenPresent(ctx context.Context) (bool, error) {
	token, ok, err := m.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return false, err
	}
	return ok && token != "", nil
}

// Token returns the persisted token or "". It fits gateway.TokenFunc.
func (m *Manager) Token(ctx context.Context) string {
	s, err := m.Current(ctx)
	if err != nil {
		return ""
	}
	return s.Token
}

// Require returns the current session or ErrNotSignedIn when no user id
// is stored.
func (m *Manager) Require(ctx context.Context) (models.Session, error) {
	s, err := m.Current(ctx)
	if err != nil {
		return models.Session{}, err
	}
	if !s.SignedIn() {
		return models.Session{}, ErrNotSignedIn
	}
	return s, nil
}

// SignIn persists s and notifies subscribers.
func (m *Manager) SignIn(ctx context.Context, s models.Session) error {
	if s.Token == "" {
		return ErrEmptyToken
	}
	err := m.store.SetMany(ctx, map[string]string{
		storage.KeyToken:  s.Token,
		storage.KeyUserID: s.UserID.String(),
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	m.log.Info(ctx, "signed in", "user_id", s.UserID.String())
	m.notify(s)
	return nil
}

// SignOut removes both credential keys and notifies subscribers.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.store.Delete(ctx, storage.KeyToken, storage.KeyUserID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.log.Info(ctx, "signed out")
	m.notify(models.Session{})
	return nil
}

// Subscribe registers fn to run after every write through m. The returned
// func removes it.
func (m *Manager) Subscribe(fn func(models.Session)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

func (m *Manager) notify(s models.Session) {
	m.mu.Lock()
	fns := make([]func(models.Session), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
