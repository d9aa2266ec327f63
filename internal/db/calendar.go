package db

import (
	"context"
	"fmt"
	"time"

	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// CalendarFilter carries the calendar list query parameters
type CalendarFilter struct {
	RestaurantID *int
	SupplierID   *int
	EventType    string
	Status       string
	Date         *time.Time
}

const calendarColumns = `id, date, restaurant_id, supplier_id, order_id, preorder_id, event_type, status`

// BuildCalendarListQuery assembles the filtered calendar query
func BuildCalendarListQuery(f CalendarFilter) (string, []interface{}) {
	query := `SELECT ` + calendarColumns + ` FROM calendar_events WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if f.RestaurantID != nil {
		query += fmt.Sprintf(" AND restaurant_id = $%d", argIndex)
		args = append(args, *f.RestaurantID)
		argIndex++
	}
	if f.SupplierID != nil {
		query += fmt.Sprintf(" AND supplier_id = $%d", argIndex)
		args = append(args, *f.SupplierID)
		argIndex++
	}
	if f.EventType != "" {
		query += fmt.Sprintf(" AND event_type = $%d", argIndex)
		args = append(args, f.EventType)
		argIndex++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, f.Status)
		argIndex++
	}
	if f.Date != nil {
		query += fmt.Sprintf(" AND date = $%d", argIndex)
		args = append(args, *f.Date)
		argIndex++
	}

	query += " ORDER BY date, id"
	return query, args
}

func scanCalendarEvent(row interface{ Scan(dest ...any) error }) (*models.CalendarEvent, error) {
	var e models.CalendarEvent
	err := row.Scan(
		&e.ID, &e.Date, &e.RestaurantID, &e.SupplierID,
		&e.OrderID, &e.PreOrderID, &e.EventType, &e.Status,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &e, nil
}

// ListCalendarEvents returns scheduled deliveries matching the filter
func (db *Database) ListCalendarEvents(ctx context.Context, f CalendarFilter) ([]models.CalendarEvent, error) {
	query, args := BuildCalendarListQuery(f)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		e, err := scanCalendarEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// GetCalendarEvent fetches one event by id
func (db *Database) GetCalendarEvent(ctx context.Context, id int) (*models.CalendarEvent, error) {
	return scanCalendarEvent(db.Pool.QueryRow(ctx,
		`SELECT `+calendarColumns+` FROM calendar_events WHERE id = $1`, id))
}

// CreateCalendarEvent schedules a delivery. The event has been validated to
// reference exactly one of order/preorder matching its type.
func (db *Database) CreateCalendarEvent(ctx context.Context, e models.CalendarEvent) (*models.CalendarEvent, error) {
	query := `
		INSERT INTO calendar_events (date, restaurant_id, supplier_id, order_id, preorder_id, event_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + calendarColumns

	created, err := scanCalendarEvent(db.Pool.QueryRow(ctx, query,
		e.Date, e.RestaurantID, e.SupplierID, e.OrderID, e.PreOrderID,
		string(e.EventType), string(e.Status)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}
	return created, nil
}

// UpdateCalendarEvent applies a partial update to date and status
func (db *Database) UpdateCalendarEvent(ctx context.Context, id int, date *time.Time, status *models.CalendarEventStatus) error {
	sets := ""
	args := []interface{}{id}
	argIndex := 2

	if date != nil {
		sets += fmt.Sprintf("date = $%d", argIndex)
		args = append(args, *date)
		argIndex++
	}
	if status != nil {
		if sets != "" {
			sets += ", "
		}
		sets += fmt.Sprintf("status = $%d", argIndex)
		args = append(args, string(*status))
		argIndex++
	}
	if sets == "" {
		return nil
	}

	result, err := db.Pool.Exec(ctx, "UPDATE calendar_events SET "+sets+" WHERE id = $1", args...)
	if err != nil {
		return fmt.Errorf("failed to update calendar event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCalendarEvent removes a scheduled delivery
func (db *Database) DeleteCalendarEvent(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
