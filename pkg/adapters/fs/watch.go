package fs

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/notesrv/pkg/core"
)

// eventBuffer is the capacity of the channel returned by Watch.
const eventBuffer = 64

// Watch starts an fsnotify worker on the notes directory and streams events
// for notes whose name matches pattern (doublestar syntax, "" means "*").
// The returned channel is closed after ctx is done and the worker has exited.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidPattern, pattern)
	}

	events := make(chan core.Event, eventBuffer)
	w := newWatchWorker(r, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-w.done
		close(events)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		r.config.Logger.Error("watch bridge failed", "error", err)
	}))

	return events, nil
}

var _ core.Watchable = (*Repository)(nil)
var _ core.Repository = (*Repository)(nil)
