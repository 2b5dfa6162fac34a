// Package queue defines the domain events exchanged over the message
// broker and the background consumer that logs them.
package queue

import "encoding/json"

// EventsQueueName is the durable queue every workshop event goes to.
const EventsQueueName = "workshop.events"

// Event type discriminators carried in the envelope.
const (
	EventRepairArchived = "repair.archived"
	EventLowStock       = "stock.low"
)

// Envelope wraps a typed event payload for the shared queue.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// RepairArchivedEvent is published when the archival worker moves a
// completed ticket to archived.
type RepairArchivedEvent struct {
	RepairID     string `json:"repair_id"`
	CustomerName string `json:"customer_name"`
	ModelName    string `json:"model_name"`
	CompletedAt  string `json:"completed_at"`
	ArchivedAt   string `json:"archived_at"`
}

// LowStockEvent is published when an inventory write leaves a part at
// or below its alert threshold.
type LowStockEvent struct {
	SparePartID   string `json:"spare_part_id"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	LowStockAlert int    `json:"low_stock_alert"`
}
