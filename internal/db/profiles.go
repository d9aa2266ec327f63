package db

import (
	"context"
	"fmt"

	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// CreateRestaurantProfile inserts a buyer profile for the given user
func (db *Database) CreateRestaurantProfile(ctx context.Context, userID string, req models.CreateRestaurantProfileRequest) (*models.RestaurantProfile, error) {
	currency := req.PreferredCurrency
	if currency == "" {
		currency = string(models.CurrencyEUR)
	}

	query := `
		INSERT INTO restaurant_profiles (user_id, company_name, manager_name, preferred_currency)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, company_name, manager_name, preferred_currency, created_at
	`

	var p models.RestaurantProfile
	err := db.Pool.QueryRow(ctx, query, userID, req.CompanyName, req.ManagerName, currency).Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.ManagerName, &p.PreferredCurrency, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create restaurant profile: %w", translateError(err))
	}
	return &p, nil
}

// GetRestaurantProfile fetches a restaurant profile by id
func (db *Database) GetRestaurantProfile(ctx context.Context, id int) (*models.RestaurantProfile, error) {
	query := `
		SELECT id, user_id, company_name, manager_name, preferred_currency, created_at
		FROM restaurant_profiles WHERE id = $1
	`
	var p models.RestaurantProfile
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.ManagerName, &p.PreferredCurrency, &p.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// GetRestaurantProfileByUserID fetches the profile owned by a user account
func (db *Database) GetRestaurantProfileByUserID(ctx context.Context, userID string) (*models.RestaurantProfile, error) {
	query := `
		SELECT id, user_id, company_name, manager_name, preferred_currency, created_at
		FROM restaurant_profiles WHERE user_id = $1
	`
	var p models.RestaurantProfile
	err := db.Pool.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.ManagerName, &p.PreferredCurrency, &p.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// ListRestaurantProfiles returns all restaurant profiles
func (db *Database) ListRestaurantProfiles(ctx context.Context) ([]models.RestaurantProfile, error) {
	query := `
		SELECT id, user_id, company_name, manager_name, preferred_currency, created_at
		FROM restaurant_profiles ORDER BY id
	`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurant profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.RestaurantProfile
	for rows.Next() {
		var p models.RestaurantProfile
		if err := rows.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.ManagerName, &p.PreferredCurrency, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan restaurant profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

const supplierColumns = `id, user_id, company_name, categories, verified, country, is_farmer, farm_name, organic_certified, certificate_url, created_at`

func scanSupplier(row interface{ Scan(dest ...any) error }) (*models.SupplierProfile, error) {
	var p models.SupplierProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.Categories, &p.Verified, &p.Country,
		&p.IsFarmer, &p.FarmName, &p.OrganicCertified, &p.CertificateURL, &p.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// CreateSupplierProfile inserts a seller profile. Farmer capability is the
// same record with is_farmer set; the verified flag is only settable by an
// administrative process.
func (db *Database) CreateSupplierProfile(ctx context.Context, userID string, req models.CreateSupplierProfileRequest) (*models.SupplierProfile, error) {
	query := `
		INSERT INTO supplier_profiles
			(user_id, company_name, categories, country, is_farmer, farm_name, organic_certified, certificate_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + supplierColumns

	p, err := scanSupplier(db.Pool.QueryRow(ctx, query,
		userID, req.CompanyName, req.Categories, req.Country,
		req.IsFarmer, req.FarmName, req.OrganicCertified, req.CertificateURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create supplier profile: %w", err)
	}
	return p, nil
}

// GetSupplierProfile fetches a supplier profile by id
func (db *Database) GetSupplierProfile(ctx context.Context, id int) (*models.SupplierProfile, error) {
	query := `SELECT ` + supplierColumns + ` FROM supplier_profiles WHERE id = $1`
	return scanSupplier(db.Pool.QueryRow(ctx, query, id))
}

// GetSupplierProfileByUserID fetches the profile owned by a user account
func (db *Database) GetSupplierProfileByUserID(ctx context.Context, userID string) (*models.SupplierProfile, error) {
	query := `SELECT ` + supplierColumns + ` FROM supplier_profiles WHERE user_id = $1`
	return scanSupplier(db.Pool.QueryRow(ctx, query, userID))
}

// ListSupplierProfiles returns all supplier profiles
func (db *Database) ListSupplierProfiles(ctx context.Context) ([]models.SupplierProfile, error) {
	query := `SELECT ` + supplierColumns + ` FROM supplier_profiles ORDER BY id`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.SupplierProfile
	for rows.Next() {
		p, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// SetSupplierVerified flips the admin-controlled trust flag
func (db *Database) SetSupplierVerified(ctx context.Context, id int, verified bool) error {
	result, err := db.Pool.Exec(ctx, `UPDATE supplier_profiles SET verified = $2 WHERE id = $1`, id, verified)
	if err != nil {
		return fmt.Errorf("failed to update supplier verification: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
