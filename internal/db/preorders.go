package db

import (
	"context"
	"fmt"
	"time"

	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

const preorderColumns = `id, restaurant_id, supplier_id, product_id, quantity, delivery_date, status, created_at`

func scanPreOrder(row interface{ Scan(dest ...any) error }) (*models.PreOrder, error) {
	var p models.PreOrder
	err := row.Scan(
		&p.ID, &p.RestaurantID, &p.SupplierID, &p.ProductID,
		&p.Quantity, &p.DeliveryDate, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// CreatePreOrder reserves quantity against a product's future availability.
// The reservation always starts in status "reserved".
func (db *Database) CreatePreOrder(ctx context.Context, restaurantID int, req models.CreatePreOrderRequest, deliveryDate time.Time) (*models.PreOrder, error) {
	query := `
		INSERT INTO preorders (restaurant_id, supplier_id, product_id, quantity, delivery_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + preorderColumns

	p, err := scanPreOrder(db.Pool.QueryRow(ctx, query,
		restaurantID, req.SupplierID, req.ProductID, req.Quantity, deliveryDate,
		string(models.PreOrderStatusReserved)))
	if err != nil {
		return nil, fmt.Errorf("failed to create preorder: %w", err)
	}
	return p, nil
}

// GetPreOrder fetches one reservation by id
func (db *Database) GetPreOrder(ctx context.Context, id int) (*models.PreOrder, error) {
	return scanPreOrder(db.Pool.QueryRow(ctx,
		`SELECT `+preorderColumns+` FROM preorders WHERE id = $1`, id))
}

// ListPreOrders returns reservations, optionally scoped to one restaurant
func (db *Database) ListPreOrders(ctx context.Context, restaurantID *int) ([]models.PreOrder, error) {
	query := `SELECT ` + preorderColumns + ` FROM preorders`
	args := []interface{}{}
	if restaurantID != nil {
		query += ` WHERE restaurant_id = $1`
		args = append(args, *restaurantID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list preorders: %w", err)
	}
	defer rows.Close()

	var preorders []models.PreOrder
	for rows.Next() {
		p, err := scanPreOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preorder: %w", err)
		}
		preorders = append(preorders, *p)
	}
	return preorders, rows.Err()
}

// UpdatePreOrder applies a partial update; status transitions are validated
// by the caller against the current row.
func (db *Database) UpdatePreOrder(ctx context.Context, id int, status *models.PreOrderStatus, quantity *float64, deliveryDate *time.Time) error {
	sets := ""
	args := []interface{}{id}
	argIndex := 2

	add := func(clause string, value interface{}) {
		if sets != "" {
			sets += ", "
		}
		sets += fmt.Sprintf("%s = $%d", clause, argIndex)
		args = append(args, value)
		argIndex++
	}

	if status != nil {
		add("status", string(*status))
	}
	if quantity != nil {
		add("quantity", *quantity)
	}
	if deliveryDate != nil {
		add("delivery_date", *deliveryDate)
	}
	if sets == "" {
		return nil
	}

	result, err := db.Pool.Exec(ctx, "UPDATE preorders SET "+sets+" WHERE id = $1", args...)
	if err != nil {
		return fmt.Errorf("failed to update preorder: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePreOrder removes a reservation
func (db *Database) DeletePreOrder(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM preorders WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
