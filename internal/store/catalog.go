// Package store composes the two data tiers behind every dashboard
// operation: the hosted MySQL backend and an in-memory local cache
// seeded with demo data.  Reads prefer the backend and fall back to
// the cache; writes go to the backend and, on failure, synthesize a
// local record optimistically (there is no retry or reconciliation
// queue once connectivity returns).  Backend failures are logged and
// tracked via a degraded flag but never surfaced as operation errors.
package store

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/repair-workshop/internal/model"
)

// CatalogRepository is the backend tier for brands and models.
type CatalogRepository interface {
	ListBrands(ctx context.Context) ([]*model.Brand, error)
	CreateBrand(ctx context.Context, b *model.Brand) error
	ListModels(ctx context.Context, brandID string) ([]*model.Model, error)
	CreateModel(ctx context.Context, m *model.Model) error
}

// Catalog holds brands and models.  A nil repository runs the store
// purely on the local tier (the unconfigured default).
type Catalog struct {
	mu       sync.RWMutex
	repo     CatalogRepository
	brands   []*model.Brand
	models   []*model.Model
	degraded bool
}

// NewCatalog builds a catalog store seeded with the demo catalog.
func NewCatalog(repo CatalogRepository) *Catalog {
	brands, models := seedCatalog(time.Now().UTC())
	return &Catalog{repo: repo, brands: brands, models: models, degraded: repo == nil}
}

// Degraded reports whether the last backend call failed (or no
// backend is configured) and the store is serving local data.
func (s *Catalog) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

func (s *Catalog) markDegraded(op string, err error) {
	s.mu.Lock()
	s.degraded = true
	s.mu.Unlock()
	log.Printf("store: catalog %s: backend unavailable, serving local data: %v", op, err)
}

func (s *Catalog) markHealthy() {
	s.mu.Lock()
	s.degraded = false
	s.mu.Unlock()
}

// ListBrands returns all brands sorted by name ascending.  It never
// fails: a backend error silently substitutes the last known set.
func (s *Catalog) ListBrands(ctx context.Context) ([]*model.Brand, error) {
	if s.repo != nil {
		out, err := s.repo.ListBrands(ctx)
		if err == nil {
			s.mu.Lock()
			s.brands = out
			s.degraded = false
			s.mu.Unlock()
			return out, nil
		}
		s.markDegraded("list brands", err)
	}
	s.mu.RLock()
	out := make([]*model.Brand, len(s.brands))
	copy(out, s.brands)
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AddBrand creates a brand from a trimmed, non-empty, unique name.
// On backend failure the brand is synthesized locally with a
// generated identifier; there is no rollback path.
func (s *Catalog) AddBrand(ctx context.Context, name string) (*model.Brand, error) {
	name = strings.TrimSpace(name)
	verr := model.NewValidationError()
	if name == "" {
		verr.Add("name", "name is required")
	} else if s.brandNameExists(name) {
		verr.Add("name", "a brand with this name already exists")
	}
	if !verr.Empty() {
		return nil, verr
	}

	b := &model.Brand{Name: name}
	if s.repo != nil {
		if err := s.repo.CreateBrand(ctx, b); err == nil {
			s.append(b, nil)
			return b, nil
		} else {
			s.markDegraded("add brand", err)
		}
	}
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	s.append(b, nil)
	return b, nil
}

// ListModels returns models sorted by name ascending, optionally
// filtered to one brand.  Same fallback semantics as ListBrands.
func (s *Catalog) ListModels(ctx context.Context, brandID string) ([]*model.Model, error) {
	if s.repo != nil {
		out, err := s.repo.ListModels(ctx, brandID)
		if err == nil {
			if brandID == "" {
				s.mu.Lock()
				s.models = out
				s.mu.Unlock()
			}
			s.markHealthy()
			return out, nil
		}
		s.markDegraded("list models", err)
	}
	s.mu.RLock()
	out := make([]*model.Model, 0, len(s.models))
	for _, m := range s.models {
		if brandID == "" || m.BrandID == brandID {
			out = append(out, m)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AddModel creates a model under an existing brand.  Same fallback
// semantics as AddBrand.
func (s *Catalog) AddModel(ctx context.Context, name, brandID string) (*model.Model, error) {
	name = strings.TrimSpace(name)
	verr := model.NewValidationError()
	if name == "" {
		verr.Add("name", "name is required")
	}
	brand := s.BrandByID(brandID)
	if brandID == "" {
		verr.Add("brand_id", "brand is required")
	} else if brand == nil {
		verr.Add("brand_id", "brand not found")
	}
	if !verr.Empty() {
		return nil, verr
	}

	m := &model.Model{Name: name, BrandID: brandID}
	if s.repo != nil {
		if err := s.repo.CreateModel(ctx, m); err == nil {
			s.append(nil, m)
			return m, nil
		} else {
			s.markDegraded("add model", err)
		}
	}
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	m.Brand = brand
	s.append(nil, m)
	return m, nil
}

// BrandByID looks up a brand in the currently visible set.
func (s *Catalog) BrandByID(id string) *model.Brand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.brands {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// ModelByID looks up a model in the currently visible set.
func (s *Catalog) ModelByID(id string) *model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.models {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (s *Catalog) brandNameExists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.brands {
		if strings.EqualFold(b.Name, name) {
			return true
		}
	}
	return false
}

func (s *Catalog) append(b *model.Brand, m *model.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b != nil {
		s.brands = append(s.brands, b)
	}
	if m != nil {
		s.models = append(s.models, m)
	}
}
