package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeProbe struct {
	present atomic.Bool
	fail    atomic.Bool
	calls   atomic.Int32
}

func (f *fakeProbe) probe(context.Context) (bool, error) {
	f.calls.Add(1)
	if f.fail.Load() {
		return false, errors.New("store locked")
	}
	return f.present.Load(), nil
}

func newWatcher(p *fakeProbe, reloads *atomic.Int32) *Watcher {
	return &Watcher{
		Probe:    p.probe,
		Interval: 10 * time.Millisecond,
		Reload:   func() { reloads.Add(1) },
	}
}

func TestWatcher_ReloadsOnceWhenTokenRemoved(t *testing.T) {
	p := &fakeProbe{}
	p.present.Store(true)
	var reloads atomic.Int32
	w := newWatcher(p, &reloads)

	w.Start(context.Background(), true)
	t.Cleanup(w.Stop)

	require.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	require.Zero(t, reloads.Load())

	p.present.Store(false)
	require.Eventually(t, func() bool { return reloads.Load() == 1 }, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(1), reloads.Load())
	require.False(t, w.Running())
}

func TestWatcher_NoPollingWhenStartedSignedOut(t *testing.T) {
	p := &fakeProbe{}
	var reloads atomic.Int32
	w := newWatcher(p, &reloads)

	w.Start(context.Background(), false)
	time.Sleep(50 * time.Millisecond)

	require.Zero(t, p.calls.Load())
	require.Zero(t, reloads.Load())
	require.False(t, w.Running())
	w.Stop()
}

func TestWatcher_StopPreventsReload(t *testing.T) {
	p := &fakeProbe{}
	p.present.Store(true)
	var reloads atomic.Int32
	w := newWatcher(p, &reloads)

	w.Start(context.Background(), true)
	require.True(t, w.Running())
	w.Stop()
	w.Stop()

	p.present.Store(false)
	calls := p.calls.Load()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, calls, p.calls.Load())
	require.Zero(t, reloads.Load())
}

func TestWatcher_ContextCancelStops(t *testing.T) {
	p := &fakeProbe{}
	p.present.Store(true)
	var reloads atomic.Int32
	w := newWatcher(p, &reloads)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx, true)
	cancel()
	require.Eventually(t, func() bool { return !w.Running() }, time.Second, 5*time.Millisecond)
	require.Zero(t, reloads.Load())
}

func TestWatcher_ProbeErrorCountsAsPresent(t *testing.T) {
	p := &fakeProbe{}
	p.fail.Store(true)
	var reloads atomic.Int32
	w := newWatcher(p, &reloads)

	w.Start(context.Background(), true)
	t.Cleanup(w.Stop)

	require.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	require.Zero(t, reloads.Load())
	require.True(t, w.Running())
}

func TestWatcher_StopFromReload(t *testing.T) {
	p := &fakeProbe{}
	var reloads atomic.Int32
	w := &Watcher{Probe: p.probe, Interval: 10 * time.Millisecond}
	w.Reload = func() {
		w.Stop()
		reloads.Add(1)
	}

	w.Start(context.Background(), true)
	require.Eventually(t, func() bool { return reloads.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestWatcher_RestartAfterReload(t *testing.T) {
	p := &fakeProbe{}
	var reloads atomic.Int32
	w := newWatcher(p, &reloads)

	w.Start(context.Background(), true)
	require.Eventually(t, func() bool { return reloads.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return !w.Running() }, time.Second, 5*time.Millisecond)

	w.Start(context.Background(), true)
	t.Cleanup(w.Stop)
	require.Eventually(t, func() bool { return reloads.Load() == 2 }, time.Second, 5*time.Millisecond)
}
