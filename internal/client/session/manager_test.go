package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/dessertai/internal/client/models"
	"github.com/dmitrijs2005/dessertai/internal/client/storage"
)

func openStore(t *testing.T, path string) *storage.SQLiteStore {
	t.Helper()
	s, err := storage.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "local.db")
	return NewManager(openStore(t, path), nil), path
}

func TestManager_SignInSignOut(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	s, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Session{}, s)
	assert.False(t, m.Authenticated(ctx))

	_, err = m.Require(ctx)
	require.ErrorIs(t, err, ErrNotSignedIn)

	require.NoError(t, m.SignIn(ctx, models.Session{Token: "tok", UserID: "5"}))
	assert.True(t, m.Authenticated(ctx))
	assert.Equal(t, "tok", m.Token(ctx))

	s, err = m.Require(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ID("5"), s.UserID)

	require.NoError(t, m.SignOut(ctx))
	assert.False(t, m.Authenticated(ctx))
	assert.Empty(t, m.Token(ctx))
}

func TestManager_SignIn_EmptyToken(t *testing.T) {
	m, _ := newManager(t)
	err := m.SignIn(context.Background(), models.Session{UserID: "1"})
	require.ErrorIs(t, err, ErrEmptyToken)
}

func TestManager_Subscribe(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	var seen []models.Session
	unsubscribe := m.Subscribe(func(s models.Session) { seen = append(seen, s) })

	require.NoError(t, m.SignIn(ctx, models.Session{Token: "t", UserID: "1"}))
	require.NoError(t, m.SignOut(ctx))
	unsubscribe()
	unsubscribe()
	require.NoError(t, m.SignIn(ctx, models.Session{Token: "t2", UserID: "2"}))

	require.Equal(t, []models.Session{{Token: "t", UserID: "1"}, {}}, seen)
}

func TestManager_SeesWritesFromAnotherProcess(t *testing.T) {
	ctx := context.Background()
	m, path := newManager(t)
	require.NoError(t, m.SignIn(ctx, models.Session{Token: "t", UserID: "1"}))

	other := NewManager(openStore(t, path), nil)
	require.NoError(t, other.SignOut(ctx))

	present, err := m.TokenPresent(ctx)
	require.NoError(t, err)
	assert.False(t, present)
}

type failingStore struct{ storage.Store }

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}

func TestManager_ReadFailure(t *testing.T) {
	m := NewManager(failingStore{}, nil)
	assert.False(t, m.Authenticated(context.Background()))
	_, err := m.Current(context.Background())
	require.Error(t, err)
	assert.Empty(t, m.Token(context.Background()))
}
