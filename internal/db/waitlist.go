package db

import (
	"context"
	"fmt"

	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// WaitlistFilter carries the waitlist query parameters
type WaitlistFilter struct {
	ProductID    *int
	RestaurantID *int
	Notified     *bool
}

const waitlistColumns = `id, product_id, restaurant_id, desired_quantity, notified, created_at`

// BuildWaitlistQuery assembles the filtered waitlist query
func BuildWaitlistQuery(f WaitlistFilter) (string, []interface{}) {
	query := `SELECT ` + waitlistColumns + ` FROM product_waitlist WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if f.ProductID != nil {
		query += fmt.Sprintf(" AND product_id = $%d", argIndex)
		args = append(args, *f.ProductID)
		argIndex++
	}
	if f.RestaurantID != nil {
		query += fmt.Sprintf(" AND restaurant_id = $%d", argIndex)
		args = append(args, *f.RestaurantID)
		argIndex++
	}
	if f.Notified != nil {
		query += fmt.Sprintf(" AND notified = $%d", argIndex)
		args = append(args, *f.Notified)
		argIndex++
	}

	query += " ORDER BY created_at"
	return query, args
}

func scanWaitlistEntry(row interface{ Scan(dest ...any) error }) (*models.ProductWaitlist, error) {
	var w models.ProductWaitlist
	err := row.Scan(&w.ID, &w.ProductID, &w.RestaurantID, &w.DesiredQuantity, &w.Notified, &w.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &w, nil
}

// ListWaitlist returns demand signals matching the filter
func (db *Database) ListWaitlist(ctx context.Context, f WaitlistFilter) ([]models.ProductWaitlist, error) {
	query, args := BuildWaitlistQuery(f)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist: %w", err)
	}
	defer rows.Close()

	var entries []models.ProductWaitlist
	for rows.Next() {
		w, err := scanWaitlistEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan waitlist entry: %w", err)
		}
		entries = append(entries, *w)
	}
	return entries, rows.Err()
}

// GetWaitlistEntry fetches one entry by id
func (db *Database) GetWaitlistEntry(ctx context.Context, id int) (*models.ProductWaitlist, error) {
	return scanWaitlistEntry(db.Pool.QueryRow(ctx,
		`SELECT `+waitlistColumns+` FROM product_waitlist WHERE id = $1`, id))
}

// CreateWaitlistEntry records a restaurant's demand for a product
func (db *Database) CreateWaitlistEntry(ctx context.Context, restaurantID int, req models.CreateWaitlistRequest) (*models.ProductWaitlist, error) {
	query := `
		INSERT INTO product_waitlist (product_id, restaurant_id, desired_quantity)
		VALUES ($1, $2, $3)
		RETURNING ` + waitlistColumns

	w, err := scanWaitlistEntry(db.Pool.QueryRow(ctx, query,
		req.ProductID, restaurantID, req.DesiredQuantity))
	if err != nil {
		return nil, fmt.Errorf("failed to create waitlist entry: %w", err)
	}
	return w, nil
}

// MarkWaitlistNotified flips the notified flag after an alert went out
func (db *Database) MarkWaitlistNotified(ctx context.Context, id int, notified bool) error {
	result, err := db.Pool.Exec(ctx,
		`UPDATE product_waitlist SET notified = $2 WHERE id = $1`, id, notified)
	if err != nil {
		return fmt.Errorf("failed to update waitlist entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWaitlistEntry removes a demand signal
func (db *Database) DeleteWaitlistEntry(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM product_waitlist WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete waitlist entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
