package fs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"

	"github.com/aretw0/notesrv/pkg/core"
)

func TestWatchWorkerStartStop(t *testing.T) {
	repo := NewRepository(Config{
		Path:   t.TempDir(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan core.Event, 1)
	w := newWatchWorker(repo, "*", events)

	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	if got := w.State().Status; got != worker.StatusRunning {
		t.Errorf("expected running status, got %s", got)
	}
	if err := w.Start(ctx); err == nil {
		t.Error("expected second Start to fail")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	_ = w.Stop(stopCtx)

	select {
	case <-w.done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not exit after Stop")
	}

	if state := repo.State().(RepositoryState); state.ActiveWatchers != 0 {
		t.Errorf("expected no active watchers, got %d", state.ActiveWatchers)
	}
}
