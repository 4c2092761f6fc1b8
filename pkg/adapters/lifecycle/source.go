package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notesrv/pkg/core"
)

// noteSource subscribes to note changes when started and republishes them
// as lifecycle events. core.Event satisfies lifecycle.Event via String.
type noteSource struct {
	notes   core.Watchable
	pattern string
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source for changes to notes whose name
// matches pattern. *core.Service and the fs repository both qualify as notes.
func NewSource(notes core.Watchable, pattern string) lifecycle.Source {
	return &noteSource{
		notes:   notes,
		pattern: pattern,
		out:     make(chan lifecycle.Event),
	}
}

func (s *noteSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start opens the subscription. A rejected pattern or an unwatchable store
// is returned here and Events is closed immediately, so callers ranging
// over it never block.
func (s *noteSource) Start(ctx context.Context) error {
	changes, err := s.notes.Watch(ctx, s.pattern)
	if err != nil {
		close(s.out)
		return fmt.Errorf("failed to watch notes %q: %w", s.pattern, err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-changes:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
