package store

import (
	"context"
	"errors"
	"log"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/repair-workshop/internal/model"
	"github.com/iliyamo/repair-workshop/internal/queue"
	"github.com/iliyamo/repair-workshop/internal/repository"
)

// SparePartRepository is the backend tier for the parts inventory.
type SparePartRepository interface {
	List(ctx context.Context) ([]*model.SparePart, error)
	Create(ctx context.Context, p *model.SparePart) error
	Update(ctx context.Context, id string, patch model.SparePartPatch) (*model.SparePart, error)
}

// SparePartInput is the full set of fields for a new spare part.
type SparePartInput struct {
	Name          string  `json:"name"`
	PartType      string  `json:"part_type"`
	ScreenQuality string  `json:"screen_quality"`
	BrandID       string  `json:"brand_id"`
	ModelID       string  `json:"model_id"`
	Quantity      int     `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
	SellingPrice  float64 `json:"selling_price"`
	LowStockAlert int     `json:"low_stock_alert"`
}

// Inventory holds the spare-parts stock.  Part consumption by repair
// tickets does not decrement quantities here; stock adjustments are
// explicit updates.
type Inventory struct {
	mu       sync.RWMutex
	repo     SparePartRepository
	catalog  *Catalog
	events   EventPublisher
	parts    []*model.SparePart
	degraded bool
}

// NewInventory builds an inventory store seeded with the demo parts.
func NewInventory(repo SparePartRepository, catalog *Catalog, events EventPublisher) *Inventory {
	now := time.Now().UTC()
	brands, models := seedCatalog(now)
	return &Inventory{
		repo:     repo,
		catalog:  catalog,
		events:   events,
		parts:    seedSpareParts(now, brands, models),
		degraded: repo == nil,
	}
}

// Degraded reports whether the store is serving local data.
func (s *Inventory) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

func (s *Inventory) markDegraded(op string, err error) {
	s.mu.Lock()
	s.degraded = true
	s.mu.Unlock()
	log.Printf("store: inventory %s: backend unavailable, serving local data: %v", op, err)
}

// ListSpareParts returns all parts joined with brand and model,
// newest first.  Never fails visibly; backend errors substitute the
// local tier.
func (s *Inventory) ListSpareParts(ctx context.Context) ([]*model.SparePart, error) {
	if s.repo != nil {
		out, err := s.repo.List(ctx)
		if err == nil {
			s.mu.Lock()
			s.parts = out
			s.degraded = false
			s.mu.Unlock()
			return out, nil
		}
		s.markDegraded("list", err)
	}
	s.mu.RLock()
	out := make([]*model.SparePart, len(s.parts))
	copy(out, s.parts)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// AddSparePart validates every field at once and inserts the part,
// synthesizing it locally on backend failure.
func (s *Inventory) AddSparePart(ctx context.Context, in SparePartInput) (*model.SparePart, error) {
	name := strings.TrimSpace(in.Name)
	quality := strings.TrimSpace(in.ScreenQuality)

	verr := model.NewValidationError()
	if name == "" {
		verr.Add("name", "name is required")
	}
	if !slices.Contains(model.PartTypes, in.PartType) {
		verr.Add("part_type", "unknown part type")
	}
	if in.BrandID == "" {
		verr.Add("brand_id", "brand is required")
	} else if s.catalog.BrandByID(in.BrandID) == nil {
		verr.Add("brand_id", "brand not found")
	}
	if in.ModelID == "" {
		verr.Add("model_id", "model is required")
	} else if s.catalog.ModelByID(in.ModelID) == nil {
		verr.Add("model_id", "model not found")
	}
	if in.Quantity < 0 {
		verr.Add("quantity", "quantity must be zero or greater")
	}
	if in.PurchasePrice <= 0 {
		verr.Add("purchase_price", "purchase price must be greater than zero")
	}
	if in.SellingPrice <= 0 {
		verr.Add("selling_price", "selling price must be greater than zero")
	} else if in.SellingPrice <= in.PurchasePrice {
		verr.Add("selling_price", "selling price must be greater than the purchase price")
	}
	if quality != "" {
		if in.PartType != model.PartTypeScreen {
			verr.Add("screen_quality", "screen quality is only valid for screens")
		} else if !slices.Contains(model.ScreenQualities, quality) {
			verr.Add("screen_quality", "unknown screen quality")
		}
	}
	if !verr.Empty() {
		return nil, verr
	}

	p := &model.SparePart{
		Name:          name,
		PartType:      in.PartType,
		BrandID:       in.BrandID,
		ModelID:       in.ModelID,
		Quantity:      in.Quantity,
		PurchasePrice: in.PurchasePrice,
		SellingPrice:  in.SellingPrice,
		LowStockAlert: in.LowStockAlert,
	}
	if quality != "" && in.PartType == model.PartTypeScreen {
		p.ScreenQuality = &quality
	}

	created := false
	if s.repo != nil {
		if err := s.repo.Create(ctx, p); err == nil {
			created = true
		} else {
			s.markDegraded("add", err)
		}
	}
	if !created {
		p.ID = uuid.NewString()
		now := time.Now().UTC()
		p.CreatedAt = now
		p.UpdatedAt = now
	}
	p.Brand = s.catalog.BrandByID(in.BrandID)
	p.Model = s.catalog.ModelByID(in.ModelID)

	s.mu.Lock()
	s.parts = append([]*model.SparePart{p}, s.parts...)
	s.mu.Unlock()

	s.notifyLowStock(ctx, p)
	return p, nil
}

// UpdateSparePart applies a partial update.  A (nil, nil) return
// means the patch was applied to the local tier but the backend could
// not confirm it; callers must treat that as unconfirmed, not failed.
func (s *Inventory) UpdateSparePart(ctx context.Context, id string, patch model.SparePartPatch) (*model.SparePart, error) {
	cur := s.PartByID(id)
	if cur == nil {
		return nil, model.ErrNotFound
	}
	if verr := s.validatePatch(cur, patch); verr != nil {
		return nil, verr
	}

	if s.repo != nil {
		updated, err := s.repo.Update(ctx, id, patch)
		if err == nil {
			s.replace(updated)
			s.notifyLowStock(ctx, updated)
			return updated, nil
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		s.markDegraded("update", err)
	}

	merged := applyPatch(cur, patch)
	s.replace(merged)
	s.notifyLowStock(ctx, merged)
	return nil, nil
}

// validatePatch checks every part invariant against the merged values
// the patch would produce, so a partial update cannot sneak past the
// rules enforced on insert.
func (s *Inventory) validatePatch(cur *model.SparePart, patch model.SparePartPatch) *model.ValidationError {
	merged := applyPatch(cur, patch)

	verr := model.NewValidationError()
	if strings.TrimSpace(merged.Name) == "" {
		verr.Add("name", "name is required")
	}
	if !slices.Contains(model.PartTypes, merged.PartType) {
		verr.Add("part_type", "unknown part type")
	}
	if patch.BrandID != nil && s.catalog.BrandByID(merged.BrandID) == nil {
		verr.Add("brand_id", "brand not found")
	}
	if patch.ModelID != nil && s.catalog.ModelByID(merged.ModelID) == nil {
		verr.Add("model_id", "model not found")
	}
	if merged.Quantity < 0 {
		verr.Add("quantity", "quantity must be zero or greater")
	}
	if merged.PurchasePrice <= 0 {
		verr.Add("purchase_price", "purchase price must be greater than zero")
	}
	if merged.SellingPrice <= merged.PurchasePrice {
		verr.Add("selling_price", "selling price must be greater than the purchase price")
	}
	if merged.ScreenQuality != nil && *merged.ScreenQuality != "" {
		if merged.PartType != model.PartTypeScreen {
			verr.Add("screen_quality", "screen quality is only valid for screens")
		} else if !slices.Contains(model.ScreenQualities, *merged.ScreenQuality) {
			verr.Add("screen_quality", "unknown screen quality")
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

func applyPatch(cur *model.SparePart, patch model.SparePartPatch) *model.SparePart {
	merged := *cur
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.PartType != nil {
		merged.PartType = *patch.PartType
	}
	if patch.ScreenQuality != nil {
		// An empty string clears the quality, e.g. when a screen is
		// reclassified as another part type.
		if *patch.ScreenQuality == "" {
			merged.ScreenQuality = nil
		} else {
			merged.ScreenQuality = patch.ScreenQuality
		}
	}
	if patch.BrandID != nil {
		merged.BrandID = *patch.BrandID
	}
	if patch.ModelID != nil {
		merged.ModelID = *patch.ModelID
	}
	if patch.Quantity != nil {
		merged.Quantity = *patch.Quantity
	}
	if patch.PurchasePrice != nil {
		merged.PurchasePrice = *patch.PurchasePrice
	}
	if patch.SellingPrice != nil {
		merged.SellingPrice = *patch.SellingPrice
	}
	if patch.LowStockAlert != nil {
		merged.LowStockAlert = *patch.LowStockAlert
	}
	merged.UpdatedAt = time.Now().UTC()
	return &merged
}

// PartByID looks up a part in the currently visible set.
func (s *Inventory) PartByID(id string) *model.SparePart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.parts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PartPurchasePrice resolves a part's wholesale price for the costing
// engine.  Unknown parts report ok == false.
func (s *Inventory) PartPurchasePrice(id string) (float64, bool) {
	p := s.PartByID(id)
	if p == nil {
		return 0, false
	}
	return p.PurchasePrice, true
}

func (s *Inventory) replace(p *model.SparePart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, old := range s.parts {
		if old.ID == p.ID {
			s.parts[i] = p
			return
		}
	}
}

func (s *Inventory) notifyLowStock(ctx context.Context, p *model.SparePart) {
	if s.events == nil || !p.IsLowStock() {
		return
	}
	_ = s.events.LowStock(ctx, queue.LowStockEvent{
		SparePartID:   p.ID,
		Name:          p.Name,
		Quantity:      p.Quantity,
		LowStockAlert: p.LowStockAlert,
	})
}
