package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/repair-workshop/internal/model"
)

// CatalogRepo runs the brand and model queries.  Rows are keyed by
// UUID strings generated here on insert, mirroring the backend's
// generated identifiers.
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo constructs a CatalogRepo with the provided DB handle.
func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// ListBrands returns every brand ordered by name ascending.
func (r *CatalogRepo) ListBrands(ctx context.Context) ([]*model.Brand, error) {
	const q = `SELECT id, name, created_at FROM brands ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Brand
	for rows.Next() {
		b := new(model.Brand)
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBrand inserts a new brand, populating ID and CreatedAt on the
// passed struct.
func (r *CatalogRepo) CreateBrand(ctx context.Context, b *model.Brand) error {
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	const q = `INSERT INTO brands (id, name, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, b.ID, b.Name, b.CreatedAt)
	return err
}

// ListModels returns models joined with their brand, ordered by model
// name ascending.  An empty brandID lists all models.
func (r *CatalogRepo) ListModels(ctx context.Context, brandID string) ([]*model.Model, error) {
	q := `SELECT m.id, m.name, m.brand_id, m.created_at,
	             b.id, b.name, b.created_at
	      FROM models m
	      JOIN brands b ON b.id = m.brand_id`
	args := []any{}
	if brandID != "" {
		q += ` WHERE m.brand_id = ?`
		args = append(args, brandID)
	}
	q += ` ORDER BY m.name ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Model
	for rows.Next() {
		m := &model.Model{Brand: new(model.Brand)}
		if err := rows.Scan(
			&m.ID, &m.Name, &m.BrandID, &m.CreatedAt,
			&m.Brand.ID, &m.Brand.Name, &m.Brand.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateModel inserts a new model and attaches the brand snapshot.
func (r *CatalogRepo) CreateModel(ctx context.Context, m *model.Model) error {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	const qInsert = `INSERT INTO models (id, name, brand_id, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, qInsert, m.ID, m.Name, m.BrandID, m.CreatedAt); err != nil {
		return err
	}

	const qBrand = `SELECT id, name, created_at FROM brands WHERE id = ?`
	b := new(model.Brand)
	if err := r.db.QueryRowContext(ctx, qBrand, m.BrandID).Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
		return err
	}
	m.Brand = b
	return nil
}
