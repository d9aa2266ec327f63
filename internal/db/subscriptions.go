package db

import (
	"context"
	"fmt"
	"time"

	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// CreatePlan defines a subscription tier
func (db *Database) CreatePlan(ctx context.Context, req models.CreatePlanRequest) (*models.SubscriptionPlan, error) {
	features := req.Features
	if features == nil {
		features = map[string]interface{}{}
	}

	var plan models.SubscriptionPlan
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO subscription_plans (name, price, features)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, price, features`,
		req.Name, req.Price, features).Scan(
		&plan.ID, &plan.Name, &plan.Price, &plan.Features,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	return &plan, nil
}

// ListPlans returns all subscription tiers
func (db *Database) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name, price, features FROM subscription_plans ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []models.SubscriptionPlan
	for rows.Next() {
		var plan models.SubscriptionPlan
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.Price, &plan.Features); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// GetPlan fetches one tier by id
func (db *Database) GetPlan(ctx context.Context, id int) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, price, features FROM subscription_plans WHERE id = $1`, id).Scan(
		&plan.ID, &plan.Name, &plan.Price, &plan.Features,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &plan, nil
}

const subscriptionColumns = `id, user_id, plan_id, start_date, end_date, active`

// CreateSubscription enrolls a user on a plan. A nil end date means the
// subscription is open-ended.
func (db *Database) CreateSubscription(ctx context.Context, userID string, planID int, endDate *time.Time) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO user_subscriptions (user_id, plan_id, end_date)
		 VALUES ($1, $2, $3)
		 RETURNING `+subscriptionColumns,
		userID, planID, endDate).Scan(
		&sub.ID, &sub.UserID, &sub.PlanID, &sub.StartDate, &sub.EndDate, &sub.Active,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", translateError(err))
	}
	return &sub, nil
}

// ListSubscriptions returns subscriptions, optionally scoped to one user
func (db *Database) ListSubscriptions(ctx context.Context, userID string) ([]models.UserSubscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM user_subscriptions`
	args := []interface{}{}
	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY id`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []models.UserSubscription
	for rows.Next() {
		var sub models.UserSubscription
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.PlanID, &sub.StartDate, &sub.EndDate, &sub.Active); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// GetSubscription fetches one subscription by id
func (db *Database) GetSubscription(ctx context.Context, id int) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := db.Pool.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM user_subscriptions WHERE id = $1`, id).Scan(
		&sub.ID, &sub.UserID, &sub.PlanID, &sub.StartDate, &sub.EndDate, &sub.Active,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &sub, nil
}

// CancelSubscription deactivates a subscription and closes its window
func (db *Database) CancelSubscription(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx,
		`UPDATE user_subscriptions SET active = FALSE, end_date = CURRENT_DATE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
