package store

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/repair-workshop/internal/costing"
	"github.com/iliyamo/repair-workshop/internal/model"
	"github.com/iliyamo/repair-workshop/internal/queue"
)

// RepairRepository is the backend tier for repair tickets.
type RepairRepository interface {
	List(ctx context.Context) ([]*model.RepairRequest, error)
	Create(ctx context.Context, rr *model.RepairRequest) error
	UpdateStatus(ctx context.Context, id string, status model.RepairStatus, completedAt *time.Time) (*model.RepairRequest, error)
}

// RepairInput is the caller-supplied portion of a new ticket.  Total
// cost and profit are derived by the store, not accepted from input.
type RepairInput struct {
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	DeviceBrandID string  `json:"device_brand_id"`
	DeviceModelID string  `json:"device_model_id"`
	IssueType     string  `json:"issue_type"`
	Description   string  `json:"description"`
	LaborCost     float64 `json:"labor_cost"`
}

// UsedPartInput is one consumed part line.  PriceAtTime is the
// selling price the caller saw at submission time; the store stores
// it verbatim rather than re-resolving the current price.
type UsedPartInput struct {
	SparePartID  string  `json:"spare_part_id"`
	QuantityUsed int     `json:"quantity_used"`
	PriceAtTime  float64 `json:"price_at_time"`
}

// Repairs holds the repair tickets.  Every mutation, including the
// archiver's sweeps, serializes on the store mutex, so a user status
// update and a concurrent sweep on the same ticket resolve to
// last-write-wins; that is safe because transitions only move
// forward.  The local tier starts empty.
type Repairs struct {
	mu        sync.RWMutex
	repo      RepairRepository
	catalog   *Catalog
	inventory *Inventory
	events    EventPublisher
	repairs   []*model.RepairRequest
	degraded  bool
	now       func() time.Time
}

// NewRepairs builds the ticket store.
func NewRepairs(repo RepairRepository, catalog *Catalog, inventory *Inventory, events EventPublisher) *Repairs {
	return &Repairs{
		repo:      repo,
		catalog:   catalog,
		inventory: inventory,
		events:    events,
		repairs:   []*model.RepairRequest{},
		degraded:  repo == nil,
		now:       time.Now,
	}
}

// Degraded reports whether the store is serving local data.
func (s *Repairs) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

func (s *Repairs) markDegraded(op string, err error) {
	s.mu.Lock()
	s.degraded = true
	s.mu.Unlock()
	log.Printf("store: repairs %s: backend unavailable, serving local data: %v", op, err)
}

// List returns all tickets newest first, joined with brand, model and
// consumed parts.  Never fails visibly.
func (s *Repairs) List(ctx context.Context) ([]*model.RepairRequest, error) {
	if s.repo != nil {
		out, err := s.repo.List(ctx)
		if err == nil {
			s.mu.Lock()
			s.repairs = out
			s.degraded = false
			s.mu.Unlock()
			return out, nil
		}
		s.markDegraded("list", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.RepairRequest, len(s.repairs))
	copy(out, s.repairs)
	return out, nil
}

// AddRepair validates the ticket, computes and stores its total cost
// and profit, and persists it together with the used-part snapshots.
// On backend failure the ticket is synthesized locally with an empty
// parts list; the part rows are not retried or queued.
func (s *Repairs) AddRepair(ctx context.Context, in RepairInput, used []UsedPartInput) (*model.RepairRequest, error) {
	verr := model.NewValidationError()
	if strings.TrimSpace(in.CustomerName) == "" {
		verr.Add("customer_name", "customer name is required")
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		verr.Add("customer_phone", "customer phone is required")
	}
	brand := s.catalog.BrandByID(in.DeviceBrandID)
	if in.DeviceBrandID == "" {
		verr.Add("device_brand_id", "device brand is required")
	} else if brand == nil {
		verr.Add("device_brand_id", "brand not found")
	}
	deviceModel := s.catalog.ModelByID(in.DeviceModelID)
	if in.DeviceModelID == "" {
		verr.Add("device_model_id", "device model is required")
	} else if deviceModel == nil {
		verr.Add("device_model_id", "model not found")
	}
	if strings.TrimSpace(in.IssueType) == "" {
		verr.Add("issue_type", "issue type is required")
	}
	if in.LaborCost < 0 {
		verr.Add("labor_cost", "labor cost must be zero or greater")
	}
	for _, p := range used {
		if p.SparePartID == "" {
			verr.Add("used_parts", "every used part needs a spare part")
			break
		}
		if p.QuantityUsed < 1 {
			verr.Add("used_parts", "quantity used must be at least one")
			break
		}
	}
	if !verr.Empty() {
		return nil, verr
	}

	costParts := make([]costing.UsedPart, 0, len(used))
	for _, p := range used {
		costParts = append(costParts, costing.UsedPart{
			SparePartID: p.SparePartID,
			Quantity:    p.QuantityUsed,
			Price:       p.PriceAtTime,
		})
	}

	rr := &model.RepairRequest{
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		DeviceBrandID: in.DeviceBrandID,
		DeviceModelID: in.DeviceModelID,
		IssueType:     in.IssueType,
		Description:   in.Description,
		LaborCost:     in.LaborCost,
		TotalCost:     costing.TotalCost(in.LaborCost, costParts),
		Profit:        costing.Profit(in.LaborCost, costParts, s.inventory.PartPurchasePrice),
		Status:        model.StatusPending,
		Brand:         brand,
		Model:         deviceModel,
	}
	for _, p := range used {
		rr.Parts = append(rr.Parts, &model.RepairPart{
			SparePartID:  p.SparePartID,
			QuantityUsed: p.QuantityUsed,
			PriceAtTime:  p.PriceAtTime,
			SparePart:    s.inventory.PartByID(p.SparePartID),
		})
	}

	if s.repo != nil {
		if err := s.repo.Create(ctx, rr); err == nil {
			s.prepend(rr)
			return rr, nil
		} else {
			s.markDegraded("add", err)
		}
	}
	// Local synthesis keeps the ticket (with its stored totals) but
	// drops the used-part rows, matching the backend-failure behavior
	// the dashboard has always had.
	rr.ID = uuid.NewString()
	now := s.now().UTC()
	rr.CreatedAt = now
	rr.UpdatedAt = now
	rr.Parts = []*model.RepairPart{}
	s.prepend(rr)
	return rr, nil
}

// UpdateStatus moves a ticket forward through its lifecycle.
// Entering completed stamps completed_at; entering any other state
// leaves a previously stamped value untouched.  A (nil, nil) return
// means the transition was applied locally but unconfirmed by the
// backend.
func (s *Repairs) UpdateStatus(ctx context.Context, id string, status model.RepairStatus) (*model.RepairRequest, error) {
	if !status.Valid() {
		verr := model.NewValidationError()
		verr.Add("status", "unknown status")
		return nil, verr
	}
	cur := s.byID(id)
	if cur == nil {
		return nil, model.ErrNotFound
	}
	if !cur.Status.CanTransitionTo(status) {
		verr := model.NewValidationError()
		verr.Add("status", fmt.Sprintf("cannot transition from %s to %s", cur.Status, status))
		return nil, verr
	}

	var completedAt *time.Time
	if status == model.StatusCompleted {
		t := s.now().UTC()
		completedAt = &t
	}

	if s.repo != nil {
		res, err := s.repo.UpdateStatus(ctx, id, status, completedAt)
		if err == nil {
			s.mu.Lock()
			cur.Status = res.Status
			if res.CompletedAt != nil {
				cur.CompletedAt = res.CompletedAt
			}
			cur.UpdatedAt = res.UpdatedAt
			s.mu.Unlock()
			return cur, nil
		}
		s.markDegraded("update status", err)
	}

	s.mu.Lock()
	cur.Status = status
	if completedAt != nil {
		cur.CompletedAt = completedAt
	}
	cur.UpdatedAt = s.now().UTC()
	s.mu.Unlock()
	return nil, nil
}

// ArchiveExpired transitions every completed ticket whose
// completed_at is at or before the cutoff to archived, publishing an
// event per ticket.  Already-archived tickets never match, so
// re-running is a no-op.  Called by the archival worker.
func (s *Repairs) ArchiveExpired(ctx context.Context, cutoff time.Time) []*model.RepairRequest {
	var archived []*model.RepairRequest

	s.mu.Lock()
	for _, r := range s.repairs {
		if r.Status != model.StatusCompleted || r.CompletedAt == nil || r.CompletedAt.After(cutoff) {
			continue
		}
		if s.repo != nil {
			if _, err := s.repo.UpdateStatus(ctx, r.ID, model.StatusArchived, nil); err != nil {
				s.degraded = true
				log.Printf("store: repairs archive %s: backend unavailable, archiving locally: %v", r.ID, err)
			}
		}
		r.Status = model.StatusArchived
		r.UpdatedAt = s.now().UTC()
		archived = append(archived, r)
	}
	s.mu.Unlock()

	if s.events != nil {
		for _, r := range archived {
			modelName := ""
			if r.Model != nil {
				modelName = r.Model.Name
			}
			_ = s.events.RepairArchived(ctx, queue.RepairArchivedEvent{
				RepairID:     r.ID,
				CustomerName: r.CustomerName,
				ModelName:    modelName,
				CompletedAt:  r.CompletedAt.UTC().Format(time.RFC3339),
				ArchivedAt:   s.now().UTC().Format(time.RFC3339),
			})
		}
	}
	return archived
}

func (s *Repairs) byID(id string) *model.RepairRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.repairs {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *Repairs) prepend(r *model.RepairRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repairs = append([]*model.RepairRequest{r}, s.repairs...)
}
