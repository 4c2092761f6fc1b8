package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notesrv/pkg/adapters/fs"
	"github.com/aretw0/notesrv/pkg/core"
)

// nextEvent waits for one event or fails the test.
func nextEvent(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "events channel closed unexpectedly")
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return core.Event{}
	}
}

func waitForWatchers(t *testing.T, repo *fs.Repository, expected int) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		state := repo.State().(fs.RepositoryState)
		if state.ActiveWatchers == expected {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for %d active watchers, have %d", expected, state.ActiveWatchers)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWatch_Lifecycle(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, err := repo.Watch(ctx, "*")
	require.NoError(t, err)
	waitForWatchers(t, repo, 1)

	// Create
	require.NoError(t, repo.Create(ctx, core.Note{Name: "alpha", Text: "hi"}))
	e := nextEvent(t, events)
	assert.Equal(t, core.EventCreate, e.Type)
	assert.Equal(t, "alpha", e.Name)

	// Atomic update (rename over an existing note)
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, repo.Update(ctx, core.Note{Name: "alpha", Text: "bye"}))
	e = nextEvent(t, events)
	assert.Equal(t, core.EventModify, e.Type)
	assert.Equal(t, "alpha", e.Name)

	// Delete
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, repo.Delete(ctx, "alpha"))
	e = nextEvent(t, events)
	assert.Equal(t, core.EventDelete, e.Type)
	assert.Equal(t, "alpha", e.Name)

	state := repo.State().(fs.RepositoryState)
	assert.NotNil(t, state.LastEvent)
}

func TestWatch_PatternFilter(t *testing.T) {
	repo, dir := setupRepo(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, err := repo.Watch(ctx, "todo-*")
	require.NoError(t, err)
	waitForWatchers(t, repo, 1)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "journal.txt"), []byte("skip"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("skip"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todo-1.txt"), []byte("keep"), 0644))

	e := nextEvent(t, events)
	assert.Equal(t, "todo-1", e.Name)

	select {
	case extra := <-events:
		t.Fatalf("unexpected event %v", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatch_InvalidPattern(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.Watch(context.Background(), "[unclosed")
	assert.ErrorIs(t, err, core.ErrInvalidPattern)
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := repo.Watch(ctx, "")
	require.NoError(t, err)
	waitForWatchers(t, repo, 1)

	cancel()

	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(3 * time.Second):
		t.Fatal("events channel was not closed after cancel")
	}
	waitForWatchers(t, repo, 0)
}
