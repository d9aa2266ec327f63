package db

import (
	"context"
	"fmt"

	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

const userColumns = `id, username, email, password_hash, is_restaurant, is_supplier, is_admin, kyc, attestation, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.IsRestaurant,
		&u.IsSupplier,
		&u.IsAdmin,
		&u.KYC,
		&u.Attestation,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

// CreateUser inserts a new account. Admin capability is never granted here.
func (db *Database) CreateUser(ctx context.Context, req models.SignupRequest, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, is_restaurant, is_supplier)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	user, err := scanUser(db.Pool.QueryRow(ctx, query,
		req.Username, req.Email, passwordHash, req.IsRestaurant, req.IsSupplier))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByUsername fetches an account by its unique username
func (db *Database) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, username))
}

// GetUserByID fetches an account by id
func (db *Database) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, id))
}
