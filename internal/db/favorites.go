package db

import (
	"context"
	"fmt"

	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// FavoriteFilter carries the favorites query parameters
type FavoriteFilter struct {
	RestaurantID  *int
	PartnerUserID string
}

const favoriteColumns = `id, restaurant_id, partner_user_id, created_at`

// BuildFavoriteListQuery assembles the filtered favorites query
func BuildFavoriteListQuery(f FavoriteFilter) (string, []interface{}) {
	query := `SELECT ` + favoriteColumns + ` FROM favorite_partners WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if f.RestaurantID != nil {
		query += fmt.Sprintf(" AND restaurant_id = $%d", argIndex)
		args = append(args, *f.RestaurantID)
		argIndex++
	}
	if f.PartnerUserID != "" {
		query += fmt.Sprintf(" AND partner_user_id = $%d", argIndex)
		args = append(args, f.PartnerUserID)
		argIndex++
	}

	query += " ORDER BY created_at DESC"
	return query, args
}

// ListFavorites returns bookmarks matching the filter
func (db *Database) ListFavorites(ctx context.Context, f FavoriteFilter) ([]models.FavoritePartner, error) {
	query, args := BuildFavoriteListQuery(f)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []models.FavoritePartner
	for rows.Next() {
		var fav models.FavoritePartner
		if err := rows.Scan(&fav.ID, &fav.RestaurantID, &fav.PartnerUserID, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}
	return favorites, rows.Err()
}

// GetFavorite fetches one bookmark by id
func (db *Database) GetFavorite(ctx context.Context, id int) (*models.FavoritePartner, error) {
	var fav models.FavoritePartner
	err := db.Pool.QueryRow(ctx,
		`SELECT `+favoriteColumns+` FROM favorite_partners WHERE id = $1`, id).Scan(
		&fav.ID, &fav.RestaurantID, &fav.PartnerUserID, &fav.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &fav, nil
}

// CreateFavorite bookmarks a partner. The (restaurant, partner) pair is
// unique; a repeat insert surfaces ErrDuplicate.
func (db *Database) CreateFavorite(ctx context.Context, restaurantID int, partnerUserID string) (*models.FavoritePartner, error) {
	var fav models.FavoritePartner
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO favorite_partners (restaurant_id, partner_user_id)
		 VALUES ($1, $2)
		 RETURNING `+favoriteColumns,
		restaurantID, partnerUserID).Scan(
		&fav.ID, &fav.RestaurantID, &fav.PartnerUserID, &fav.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &fav, nil
}

// DeleteFavorite removes a bookmark
func (db *Database) DeleteFavorite(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM favorite_partners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
