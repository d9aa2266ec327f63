package db

import (
	"context"
	"fmt"
	"time"

	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// CreateOrder inserts an order and its line items in one transaction.
// Each item's unit price is snapshotted from the product at creation time;
// a failure on any item rolls the whole order back.
func (db *Database) CreateOrder(ctx context.Context, restaurantID int, deliveryDate time.Time, items []models.CreateOrderItemRequest) (*models.Order, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var order models.Order
	orderQuery := `
		INSERT INTO orders (restaurant_id, delivery_date, status)
		VALUES ($1, $2, $3)
		RETURNING id, restaurant_id, delivery_date, status, created_at
	`
	err = tx.QueryRow(ctx, orderQuery, restaurantID, deliveryDate, string(models.OrderStatusPending)).Scan(
		&order.ID, &order.RestaurantID, &order.DeliveryDate, &order.Status, &order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", translateError(err))
	}

	order.Items = make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		var priceSnapshot float64
		err = tx.QueryRow(ctx, `SELECT price_per_unit FROM products WHERE id = $1`, item.ProductID).Scan(&priceSnapshot)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve product %d: %w", item.ProductID, translateError(err))
		}

		var orderItem models.OrderItem
		itemQuery := `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price_snapshot)
			VALUES ($1, $2, $3, $4)
			RETURNING id, order_id, product_id, quantity, unit_price_snapshot
		`
		err = tx.QueryRow(ctx, itemQuery, order.ID, item.ProductID, item.Quantity, priceSnapshot).Scan(
			&orderItem.ID, &orderItem.OrderID, &orderItem.ProductID, &orderItem.Quantity, &orderItem.UnitPriceSnapshot,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", translateError(err))
		}
		order.Items = append(order.Items, orderItem)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	return &order, nil
}

// GetOrder fetches one order with its items
func (db *Database) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	err := db.Pool.QueryRow(ctx,
		`SELECT id, restaurant_id, delivery_date, status, created_at FROM orders WHERE id = $1`, id).Scan(
		&order.ID, &order.RestaurantID, &order.DeliveryDate, &order.Status, &order.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	items, err := db.getOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// ListOrders returns orders, optionally scoped to one restaurant
func (db *Database) ListOrders(ctx context.Context, restaurantID *int) ([]models.Order, error) {
	query := `SELECT id, restaurant_id, delivery_date, status, created_at FROM orders`
	args := []interface{}{}
	if restaurantID != nil {
		query += ` WHERE restaurant_id = $1`
		args = append(args, *restaurantID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(&order.ID, &order.RestaurantID, &order.DeliveryDate, &order.Status, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := db.getOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (db *Database) getOrderItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, order_id, product_id, quantity, unit_price_snapshot FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPriceSnapshot); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateOrderStatus moves an order to a new status
func (db *Database) UpdateOrderStatus(ctx context.Context, id int, status models.OrderStatus) error {
	result, err := db.Pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateOrderDeliveryDate reschedules an order
func (db *Database) UpdateOrderDeliveryDate(ctx context.Context, id int, deliveryDate time.Time) error {
	result, err := db.Pool.Exec(ctx, `UPDATE orders SET delivery_date = $2 WHERE id = $1`, id, deliveryDate)
	if err != nil {
		return fmt.Errorf("failed to update order delivery date: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOrder removes an order; items cascade away with it
func (db *Database) DeleteOrder(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
