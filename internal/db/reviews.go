package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// ReviewFilter carries the review list query parameters
type ReviewFilter struct {
	TargetID string
	Ordering string // created_at, "-" prefix for descending
}

const reviewColumns = `id, reviewer_id, target_id, rating, comment, image_url, created_at`

// BuildReviewListQuery assembles the filtered review query
func BuildReviewListQuery(f ReviewFilter) (string, []interface{}) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE 1=1`
	args := []interface{}{}

	if f.TargetID != "" {
		query += " AND target_id = $1"
		args = append(args, f.TargetID)
	}

	if strings.TrimPrefix(f.Ordering, "-") == "created_at" && strings.HasPrefix(f.Ordering, "-") {
		query += " ORDER BY created_at DESC"
	} else {
		query += " ORDER BY created_at"
	}
	return query, args
}

func scanReview(row interface{ Scan(dest ...any) error }) (*models.Review, error) {
	var r models.Review
	err := row.Scan(&r.ID, &r.ReviewerID, &r.TargetID, &r.Rating, &r.Comment, &r.ImageURL, &r.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &r, nil
}

// ListReviews returns reviews matching the filter
func (db *Database) ListReviews(ctx context.Context, f ReviewFilter) ([]models.Review, error) {
	query, args := BuildReviewListQuery(f)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, *r)
	}
	return reviews, rows.Err()
}

// GetReview fetches one review by id
func (db *Database) GetReview(ctx context.Context, id int) (*models.Review, error) {
	return scanReview(db.Pool.QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
}

// CreateReview records a rating from one user about another
func (db *Database) CreateReview(ctx context.Context, reviewerID string, req models.CreateReviewRequest) (*models.Review, error) {
	query := `
		INSERT INTO reviews (reviewer_id, target_id, rating, comment, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + reviewColumns

	r, err := scanReview(db.Pool.QueryRow(ctx, query,
		reviewerID, req.TargetID, req.Rating, req.Comment, req.ImageURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return r, nil
}

// DeleteReview removes a review
func (db *Database) DeleteReview(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
