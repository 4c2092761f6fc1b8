package main

import (
	"context"

	notelifecycle "github.com/aretw0/notesrv/pkg/adapters/lifecycle"
	"github.com/aretw0/notesrv/pkg/core"
)

// auditEvents logs every note change observed in the cache directory
// until ctx ends.
func (c *cli) auditEvents(ctx context.Context, svc *core.Service) error {
	src := notelifecycle.NewSource(svc, "*")
	if err := src.Start(ctx); err != nil {
		return err
	}

	go func() {
		for e := range src.Events() {
			c.logger.Info("note changed", "event", e.String())
		}
	}()
	return nil
}
