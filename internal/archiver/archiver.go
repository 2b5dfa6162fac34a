// Package archiver runs the background sweep that moves completed
// repair tickets to archived once their dwell period elapses.
package archiver

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/repair-workshop/internal/model"
)

// Defaults: sweep every 12 hours and archive tickets completed at
// least 12 hours ago.
const (
	DefaultPeriod = 12 * time.Hour
	DefaultDwell  = 12 * time.Hour
)

// TicketStore is the slice of the repair store the worker needs.
type TicketStore interface {
	ArchiveExpired(ctx context.Context, cutoff time.Time) []*model.RepairRequest
}

// Worker periodically archives expired tickets.  The clock is
// injectable so the dwell boundary is testable.
type Worker struct {
	store  TicketStore
	period time.Duration
	dwell  time.Duration
	now    func() time.Time
}

// New builds a worker with the default period, dwell and clock.
func New(store TicketStore) *Worker {
	return &Worker{
		store:  store,
		period: DefaultPeriod,
		dwell:  DefaultDwell,
		now:    time.Now,
	}
}

// Run sweeps once immediately, so a restart does not delay the first
// transition by a full period, then on every tick until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	w.sweep(ctx)

	ticker := time.NewTicker(w.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	cutoff := w.now().Add(-w.dwell)
	archived := w.store.ArchiveExpired(ctx, cutoff)
	if len(archived) > 0 {
		log.Printf("archiver: archived %d completed ticket(s)", len(archived))
	}
}
