package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/repair-workshop/internal/model"
)

// SettingsRepo reads and updates the single workshop_settings row.
// The row is seeded by the schema; this repository never inserts.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo constructs a SettingsRepo with the provided DB handle.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the settings row, or ErrNotFound when the table is empty.
func (r *SettingsRepo) Get(ctx context.Context) (*model.WorkshopSettings, error) {
	const q = `SELECT id, name, address, phone, thank_you_message, created_at, updated_at
	           FROM workshop_settings LIMIT 1`
	s := new(model.WorkshopSettings)
	if err := r.db.QueryRowContext(ctx, q).Scan(
		&s.ID, &s.Name, &s.Address, &s.Phone, &s.ThankYouMessage, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// Update applies the non-nil fields of the patch to the row with the
// given id and returns the refreshed row.
func (r *SettingsRepo) Update(ctx context.Context, id string, patch model.WorkshopSettingsPatch) (*model.WorkshopSettings, error) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Address != nil {
		add("address", *patch.Address)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.ThankYouMessage != nil {
		add("thank_you_message", *patch.ThankYouMessage)
	}

	q := "UPDATE workshop_settings SET " + joinSet(set) + " WHERE id = ?"
	args = append(args, id)
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.Get(ctx)
}
