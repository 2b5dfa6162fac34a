package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/repair-workshop/internal/model"
)

// SparePartRepo runs the spare_parts queries.  Listings are always
// joined with brand and model for display.
type SparePartRepo struct {
	db *sql.DB
}

// NewSparePartRepo constructs a SparePartRepo with the provided DB handle.
func NewSparePartRepo(db *sql.DB) *SparePartRepo {
	return &SparePartRepo{db: db}
}

const sparePartColumns = `sp.id, sp.name, sp.part_type, sp.screen_quality,
	sp.brand_id, sp.model_id, sp.quantity, sp.purchase_price, sp.selling_price,
	sp.low_stock_alert, sp.created_at, sp.updated_at,
	b.id, b.name, b.created_at,
	m.id, m.name, m.brand_id, m.created_at`

const sparePartJoins = ` FROM spare_parts sp
	JOIN brands b ON b.id = sp.brand_id
	JOIN models m ON m.id = sp.model_id`

func scanSparePart(row interface{ Scan(...any) error }) (*model.SparePart, error) {
	p := &model.SparePart{Brand: new(model.Brand), Model: new(model.Model)}
	var quality sql.NullString
	if err := row.Scan(
		&p.ID, &p.Name, &p.PartType, &quality,
		&p.BrandID, &p.ModelID, &p.Quantity, &p.PurchasePrice, &p.SellingPrice,
		&p.LowStockAlert, &p.CreatedAt, &p.UpdatedAt,
		&p.Brand.ID, &p.Brand.Name, &p.Brand.CreatedAt,
		&p.Model.ID, &p.Model.Name, &p.Model.BrandID, &p.Model.CreatedAt,
	); err != nil {
		return nil, err
	}
	if quality.Valid {
		p.ScreenQuality = &quality.String
	}
	return p, nil
}

// List returns all spare parts joined with brand and model, newest first.
func (r *SparePartRepo) List(ctx context.Context) ([]*model.SparePart, error) {
	q := `SELECT ` + sparePartColumns + sparePartJoins + ` ORDER BY sp.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.SparePart
	for rows.Next() {
		p, err := scanSparePart(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one spare part joined with brand and model.
func (r *SparePartRepo) GetByID(ctx context.Context, id string) (*model.SparePart, error) {
	q := `SELECT ` + sparePartColumns + sparePartJoins + ` WHERE sp.id = ?`
	p, err := scanSparePart(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a new spare part, populating ID and timestamps.
func (r *SparePartRepo) Create(ctx context.Context, p *model.SparePart) error {
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	var quality sql.NullString
	if p.ScreenQuality != nil {
		quality = sql.NullString{String: *p.ScreenQuality, Valid: true}
	}
	const q = `INSERT INTO spare_parts
		(id, name, part_type, screen_quality, brand_id, model_id,
		 quantity, purchase_price, selling_price, low_stock_alert, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		p.ID, p.Name, p.PartType, quality, p.BrandID, p.ModelID,
		p.Quantity, p.PurchasePrice, p.SellingPrice, p.LowStockAlert, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// Update applies the non-nil fields of the patch and returns the
// refreshed joined row.  ErrNotFound is returned when no row matches.
func (r *SparePartRepo) Update(ctx context.Context, id string, patch model.SparePartPatch) (*model.SparePart, error) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.PartType != nil {
		add("part_type", *patch.PartType)
	}
	if patch.ScreenQuality != nil {
		add("screen_quality", *patch.ScreenQuality)
	}
	if patch.BrandID != nil {
		add("brand_id", *patch.BrandID)
	}
	if patch.ModelID != nil {
		add("model_id", *patch.ModelID)
	}
	if patch.Quantity != nil {
		add("quantity", *patch.Quantity)
	}
	if patch.PurchasePrice != nil {
		add("purchase_price", *patch.PurchasePrice)
	}
	if patch.SellingPrice != nil {
		add("selling_price", *patch.SellingPrice)
	}
	if patch.LowStockAlert != nil {
		add("low_stock_alert", *patch.LowStockAlert)
	}

	q := "UPDATE spare_parts SET " + joinSet(set) + " WHERE id = ?"
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports zero affected rows for no-op updates too, so
		// confirm the row is really missing before reporting it.
		if _, err := r.GetByID(ctx, id); errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func joinSet(set []string) string {
	out := set[0]
	for _, s := range set[1:] {
		out += ", " + s
	}
	return out
}
