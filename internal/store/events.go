package store

import (
	"context"

	"github.com/iliyamo/repair-workshop/internal/queue"
)

// EventPublisher pushes domain events to the message broker.  All
// publishing is best-effort: stores ignore the returned error and a
// nil publisher disables events entirely.
type EventPublisher interface {
	RepairArchived(ctx context.Context, ev queue.RepairArchivedEvent) error
	LowStock(ctx context.Context, ev queue.LowStockEvent) error
}
