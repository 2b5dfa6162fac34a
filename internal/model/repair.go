package model

import "time"

// RepairStatus is the lifecycle state of a repair ticket.
type RepairStatus string

const (
	StatusPending    RepairStatus = "pending"
	StatusInProgress RepairStatus = "in_progress"
	StatusCompleted  RepairStatus = "completed"
	StatusArchived   RepairStatus = "archived"
)

// statusRank orders the lifecycle: pending -> in_progress -> completed -> archived.
var statusRank = map[RepairStatus]int{
	StatusPending:    0,
	StatusInProgress: 1,
	StatusCompleted:  2,
	StatusArchived:   3,
}

// Valid reports whether s is one of the known lifecycle states.
func (s RepairStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is legal.
// Transitions only move forward (skipping states is allowed, e.g.
// pending -> completed); archived is terminal.
func (s RepairStatus) CanTransitionTo(next RepairStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// RepairRequest is a repair ticket for a customer's device.  TotalCost
// and Profit are computed once at creation time and stored; they are
// never recomputed from the parts afterwards.  CompletedAt is stamped
// when the ticket enters the completed state and is never cleared by
// later transitions.  Corresponds to a row in `repair_requests`.
type RepairRequest struct {
	ID            string        `json:"id"`              // repair_requests.id
	CustomerName  string        `json:"customer_name"`   // repair_requests.customer_name
	CustomerPhone string        `json:"customer_phone"`  // repair_requests.customer_phone
	DeviceBrandID string        `json:"device_brand_id"` // repair_requests.device_brand_id
	DeviceModelID string        `json:"device_model_id"` // repair_requests.device_model_id
	IssueType     string        `json:"issue_type"`      // repair_requests.issue_type
	Description   string        `json:"description"`     // repair_requests.description
	LaborCost     float64       `json:"labor_cost"`      // repair_requests.labor_cost
	TotalCost     float64       `json:"total_cost"`      // repair_requests.total_cost
	Profit        float64       `json:"profit"`          // repair_requests.profit
	Status        RepairStatus  `json:"status"`          // repair_requests.status
	CreatedAt     time.Time     `json:"created_at"`      // repair_requests.created_at
	CompletedAt   *time.Time    `json:"completed_at,omitempty"` // repair_requests.completed_at (nullable)
	UpdatedAt     time.Time     `json:"updated_at"`      // repair_requests.updated_at
	Brand         *Brand        `json:"brand,omitempty"` // joined brand snapshot
	Model         *Model        `json:"model,omitempty"` // joined model snapshot
	Parts         []*RepairPart `json:"repair_parts"`    // joined repair_parts rows
}

// RepairPart records one spare part consumed by a ticket.  PriceAtTime
// snapshots the part's selling price at ticket creation so historical
// ticket costs survive later price changes; that snapshot is the whole
// reason this is a stored row rather than a live join.  Corresponds to
// a row in `repair_parts`.
type RepairPart struct {
	ID           string     `json:"id"`                   // repair_parts.id
	RepairID     string     `json:"repair_id"`            // repair_parts.repair_id
	SparePartID  string     `json:"spare_part_id"`        // repair_parts.spare_part_id
	QuantityUsed int        `json:"quantity_used"`        // repair_parts.quantity_used (>= 1)
	PriceAtTime  float64    `json:"price_at_time"`        // repair_parts.price_at_time
	CreatedAt    time.Time  `json:"created_at"`           // repair_parts.created_at
	SparePart    *SparePart `json:"spare_part,omitempty"` // joined spare part snapshot
}
