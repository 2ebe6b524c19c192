package server

import (
	"context"

	"github.com/preston-bernstein/ktowers-overlay/internal/domain"
	"github.com/preston-bernstein/ktowers-overlay/internal/poller"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Status() poller.Status
	Latest() (domain.Snapshot, bool)
	Fatal() <-chan error
}
