package store

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/repair-workshop/internal/model"
	"github.com/iliyamo/repair-workshop/internal/queue"
)

var errBackendDown = errors.New("dial tcp: connection refused")

// failingCatalogRepo simulates an unreachable backend.
type failingCatalogRepo struct{}

func (failingCatalogRepo) ListBrands(context.Context) ([]*model.Brand, error) {
	return nil, errBackendDown
}
func (failingCatalogRepo) CreateBrand(context.Context, *model.Brand) error { return errBackendDown }
func (failingCatalogRepo) ListModels(context.Context, string) ([]*model.Model, error) {
	return nil, errBackendDown
}
func (failingCatalogRepo) CreateModel(context.Context, *model.Model) error { return errBackendDown }

// failingPartRepo simulates an unreachable backend for spare parts.
type failingPartRepo struct{}

func (failingPartRepo) List(context.Context) ([]*model.SparePart, error) {
	return nil, errBackendDown
}
func (failingPartRepo) Create(context.Context, *model.SparePart) error { return errBackendDown }
func (failingPartRepo) Update(context.Context, string, model.SparePartPatch) (*model.SparePart, error) {
	return nil, errBackendDown
}

// failingRepairRepo simulates an unreachable backend for tickets.
type failingRepairRepo struct{}

func (failingRepairRepo) List(context.Context) ([]*model.RepairRequest, error) {
	return nil, errBackendDown
}
func (failingRepairRepo) Create(context.Context, *model.RepairRequest) error { return errBackendDown }
func (failingRepairRepo) UpdateStatus(context.Context, string, model.RepairStatus, *time.Time) (*model.RepairRequest, error) {
	return nil, errBackendDown
}

// fakeEvents records every published event.
type fakeEvents struct {
	archived []queue.RepairArchivedEvent
	lowStock []queue.LowStockEvent
}

func (f *fakeEvents) RepairArchived(_ context.Context, ev queue.RepairArchivedEvent) error {
	f.archived = append(f.archived, ev)
	return nil
}

func (f *fakeEvents) LowStock(_ context.Context, ev queue.LowStockEvent) error {
	f.lowStock = append(f.lowStock, ev)
	return nil
}
