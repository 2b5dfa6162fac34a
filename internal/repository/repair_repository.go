package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/repair-workshop/internal/model"
)

// RepairRepo runs the repair_requests and repair_parts queries.  A
// ticket and its part rows are written in one transaction so a
// half-inserted ticket never reaches the backend.
type RepairRepo struct {
	db *sql.DB
}

// NewRepairRepo constructs a RepairRepo with the provided DB handle.
func NewRepairRepo(db *sql.DB) *RepairRepo {
	return &RepairRepo{db: db}
}

// List returns all tickets newest first, each joined with brand,
// model and its repair_parts rows (each joined with its spare part).
func (r *RepairRepo) List(ctx context.Context) ([]*model.RepairRequest, error) {
	const q = `SELECT r.id, r.customer_name, r.customer_phone,
	           r.device_brand_id, r.device_model_id, r.issue_type, r.description,
	           r.labor_cost, r.total_cost, r.profit, r.status,
	           r.created_at, r.completed_at, r.updated_at,
	           b.id, b.name, b.created_at,
	           m.id, m.name, m.brand_id, m.created_at
	    FROM repair_requests r
	    JOIN brands b ON b.id = r.device_brand_id
	    JOIN models m ON m.id = r.device_model_id
	    ORDER BY r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.RepairRequest
	byID := make(map[string]*model.RepairRequest)
	for rows.Next() {
		rr := &model.RepairRequest{Brand: new(model.Brand), Model: new(model.Model), Parts: []*model.RepairPart{}}
		var completed sql.NullTime
		if err := rows.Scan(
			&rr.ID, &rr.CustomerName, &rr.CustomerPhone,
			&rr.DeviceBrandID, &rr.DeviceModelID, &rr.IssueType, &rr.Description,
			&rr.LaborCost, &rr.TotalCost, &rr.Profit, &rr.Status,
			&rr.CreatedAt, &completed, &rr.UpdatedAt,
			&rr.Brand.ID, &rr.Brand.Name, &rr.Brand.CreatedAt,
			&rr.Model.ID, &rr.Model.Name, &rr.Model.BrandID, &rr.Model.CreatedAt,
		); err != nil {
			return nil, err
		}
		if completed.Valid {
			t := completed.Time
			rr.CompletedAt = &t
		}
		out = append(out, rr)
		byID[rr.ID] = rr
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	if err := r.attachParts(ctx, byID); err != nil {
		return nil, err
	}
	return out, nil
}

// attachParts loads every repair_parts row for the given tickets in
// one query and groups them in memory.
func (r *RepairRepo) attachParts(ctx context.Context, byID map[string]*model.RepairRequest) error {
	ids := make([]any, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	q := `SELECT rp.id, rp.repair_id, rp.spare_part_id, rp.quantity_used, rp.price_at_time, rp.created_at,
	             sp.id, sp.name, sp.part_type, sp.quantity, sp.purchase_price, sp.selling_price
	      FROM repair_parts rp
	      JOIN spare_parts sp ON sp.id = rp.spare_part_id
	      WHERE rp.repair_id IN (?` + strings.Repeat(", ?", len(ids)-1) + `)
	      ORDER BY rp.created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		rp := &model.RepairPart{SparePart: new(model.SparePart)}
		if err := rows.Scan(
			&rp.ID, &rp.RepairID, &rp.SparePartID, &rp.QuantityUsed, &rp.PriceAtTime, &rp.CreatedAt,
			&rp.SparePart.ID, &rp.SparePart.Name, &rp.SparePart.PartType,
			&rp.SparePart.Quantity, &rp.SparePart.PurchasePrice, &rp.SparePart.SellingPrice,
		); err != nil {
			return err
		}
		if rr, ok := byID[rp.RepairID]; ok {
			rr.Parts = append(rr.Parts, rp)
		}
	}
	return rows.Err()
}

// Create inserts the ticket and its part rows in one transaction,
// populating IDs and timestamps on the passed structs.
func (r *RepairRepo) Create(ctx context.Context, rr *model.RepairRequest) (err error) {
	rr.ID = uuid.NewString()
	now := time.Now().UTC()
	rr.CreatedAt = now
	rr.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	const qTicket = `INSERT INTO repair_requests
		(id, customer_name, customer_phone, device_brand_id, device_model_id,
		 issue_type, description, labor_cost, total_cost, profit, status,
		 created_at, completed_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?)`
	if _, err = tx.ExecContext(ctx, qTicket,
		rr.ID, rr.CustomerName, rr.CustomerPhone, rr.DeviceBrandID, rr.DeviceModelID,
		rr.IssueType, rr.Description, rr.LaborCost, rr.TotalCost, rr.Profit, rr.Status,
		rr.CreatedAt, rr.UpdatedAt,
	); err != nil {
		return err
	}

	const qPart = `INSERT INTO repair_parts
		(id, repair_id, spare_part_id, quantity_used, price_at_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	for _, p := range rr.Parts {
		p.ID = uuid.NewString()
		p.RepairID = rr.ID
		p.CreatedAt = now
		if _, err = tx.ExecContext(ctx, qPart,
			p.ID, p.RepairID, p.SparePartID, p.QuantityUsed, p.PriceAtTime, p.CreatedAt,
		); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus sets the ticket's status and, when completedAt is
// non-nil, stamps completed_at.  A nil completedAt leaves any
// previously stamped value untouched.  ErrNotFound is returned when
// no ticket matches.
func (r *RepairRepo) UpdateStatus(ctx context.Context, id string, status model.RepairStatus, completedAt *time.Time) (*model.RepairRequest, error) {
	now := time.Now().UTC()
	var res sql.Result
	var err error
	if completedAt != nil {
		const q = `UPDATE repair_requests SET status = ?, completed_at = ?, updated_at = ? WHERE id = ?`
		res, err = r.db.ExecContext(ctx, q, status, *completedAt, now, id)
	} else {
		const q = `UPDATE repair_requests SET status = ?, updated_at = ? WHERE id = ?`
		res, err = r.db.ExecContext(ctx, q, status, now, id)
	}
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if exists, err := r.exists(ctx, id); err != nil {
			return nil, err
		} else if !exists {
			return nil, ErrNotFound
		}
	}

	const qSelect = `SELECT id, status, completed_at, updated_at FROM repair_requests WHERE id = ?`
	rr := new(model.RepairRequest)
	var completed sql.NullTime
	if err := r.db.QueryRowContext(ctx, qSelect, id).Scan(&rr.ID, &rr.Status, &completed, &rr.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if completed.Valid {
		t := completed.Time
		rr.CompletedAt = &t
	}
	return rr, nil
}

func (r *RepairRepo) exists(ctx context.Context, id string) (bool, error) {
	const q = `SELECT 1 FROM repair_requests WHERE id = ?`
	var one int
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
