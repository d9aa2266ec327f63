package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// OfferFilter carries the offer list query parameters
type OfferFilter struct {
	OrderID    *int
	SupplierID *int
	Ordering   string // price | delivery_eta, "-" prefix for descending
}

// BuildOfferListQuery assembles the filtered offer list. The default order
// is (price asc, delivery_eta asc) so the best bid always lists first.
func BuildOfferListQuery(f OfferFilter) (string, []interface{}) {
	query := `SELECT id, order_id, supplier_id, price, delivery_eta, created_at FROM offers WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if f.OrderID != nil {
		query += fmt.Sprintf(" AND order_id = $%d", argIndex)
		args = append(args, *f.OrderID)
		argIndex++
	}
	if f.SupplierID != nil {
		query += fmt.Sprintf(" AND supplier_id = $%d", argIndex)
		args = append(args, *f.SupplierID)
		argIndex++
	}

	query += " ORDER BY " + offerOrderClause(f.Ordering)
	return query, args
}

func offerOrderClause(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	column := strings.TrimPrefix(ordering, "-")

	switch column {
	case "price":
		if desc {
			return "price DESC, delivery_eta"
		}
		return "price, delivery_eta"
	case "delivery_eta":
		if desc {
			return "delivery_eta DESC"
		}
		return "delivery_eta"
	default:
		return "price, delivery_eta"
	}
}

// ListOffers returns offers matching the filter
func (db *Database) ListOffers(ctx context.Context, f OfferFilter) ([]models.Offer, error) {
	query, args := BuildOfferListQuery(f)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		var o models.Offer
		if err := rows.Scan(&o.ID, &o.OrderID, &o.SupplierID, &o.Price, &o.DeliveryETA, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// GetOffer fetches one offer by id
func (db *Database) GetOffer(ctx context.Context, id int) (*models.Offer, error) {
	var o models.Offer
	err := db.Pool.QueryRow(ctx,
		`SELECT id, order_id, supplier_id, price, delivery_eta, created_at FROM offers WHERE id = $1`, id).Scan(
		&o.ID, &o.OrderID, &o.SupplierID, &o.Price, &o.DeliveryETA, &o.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &o, nil
}

// CreateOffer inserts a supplier's bid on an order
func (db *Database) CreateOffer(ctx context.Context, supplierID int, req models.CreateOfferRequest, deliveryETA time.Time) (*models.Offer, error) {
	var o models.Offer
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO offers (order_id, supplier_id, price, delivery_eta)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, order_id, supplier_id, price, delivery_eta, created_at`,
		req.OrderID, supplierID, req.Price, deliveryETA).Scan(
		&o.ID, &o.OrderID, &o.SupplierID, &o.Price, &o.DeliveryETA, &o.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", translateError(err))
	}
	return &o, nil
}

// DeleteOffer withdraws a bid
func (db *Database) DeleteOffer(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
