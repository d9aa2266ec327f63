package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/karloviurii-cpu/restockhub-mvp/internal/models"
)

// ProductFilter carries the list-endpoint query parameters
type ProductFilter struct {
	Category         string
	SupplierVerified *bool
	SupplierFarmer   *bool
	Search           string
	Ordering         string // price_per_unit | available_from, "-" prefix for descending
}

const productSelect = `
	SELECT p.id, p.name, p.category, p.unit, p.price_per_unit, p.currency,
	       p.available_from, p.available_to, p.supplier_id, p.verified, p.created_at
	FROM products p
	JOIN supplier_profiles s ON s.id = p.supplier_id`

// BuildProductListQuery assembles the filtered, searched, ordered list query.
// Kept as a pure function so the SQL shape is testable without a database.
func BuildProductListQuery(f ProductFilter) (string, []interface{}) {
	query := productSelect + " WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if f.Category != "" {
		query += fmt.Sprintf(" AND p.category = $%d", argIndex)
		args = append(args, f.Category)
		argIndex++
	}
	if f.SupplierVerified != nil {
		query += fmt.Sprintf(" AND s.verified = $%d", argIndex)
		args = append(args, *f.SupplierVerified)
		argIndex++
	}
	if f.SupplierFarmer != nil {
		query += fmt.Sprintf(" AND s.is_farmer = $%d", argIndex)
		args = append(args, *f.SupplierFarmer)
		argIndex++
	}
	if f.Search != "" {
		query += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.category ILIKE $%d OR s.company_name ILIKE $%d)",
			argIndex, argIndex, argIndex)
		args = append(args, "%"+f.Search+"%")
		argIndex++
	}

	query += " ORDER BY " + productOrderClause(f.Ordering)
	return query, args
}

// productOrderClause whitelists the orderable columns; unknown values fall
// back to the insertion order.
func productOrderClause(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	column := strings.TrimPrefix(ordering, "-")

	switch column {
	case "price_per_unit":
		column = "p.price_per_unit"
	case "available_from":
		column = "p.available_from"
	default:
		return "p.id"
	}
	if desc {
		return column + " DESC"
	}
	return column
}

func scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Unit, &p.PricePerUnit, &p.Currency,
		&p.AvailableFrom, &p.AvailableTo, &p.SupplierID, &p.Verified, &p.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// ListProducts returns products matching the filter, with media embedded
func (db *Database) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	query, args := BuildProductListQuery(f)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range products {
		media, err := db.GetProductMedia(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Media = media
		products[i].ComputeDerived(now)
	}
	return products, nil
}

// GetProduct fetches one product with its media
func (db *Database) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	p, err := scanProduct(db.Pool.QueryRow(ctx, productSelect+" WHERE p.id = $1", id))
	if err != nil {
		return nil, err
	}
	media, err := db.GetProductMedia(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Media = media
	p.ComputeDerived(time.Now())
	return p, nil
}

// CreateProduct inserts a new listing
func (db *Database) CreateProduct(ctx context.Context, supplierID int, req models.CreateProductRequest, availableFrom time.Time, availableTo *time.Time) (*models.Product, error) {
	unit := req.Unit
	if unit == "" {
		unit = "kg"
	}
	currency := req.Currency
	if currency == "" {
		currency = string(models.CurrencyEUR)
	}

	query := `
		INSERT INTO products (name, category, unit, price_per_unit, currency, available_from, available_to, supplier_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, category, unit, price_per_unit, currency, available_from, available_to, supplier_id, verified, created_at
	`

	p, err := scanProduct(db.Pool.QueryRow(ctx, query,
		req.Name, req.Category, unit, req.PricePerUnit, currency, availableFrom, availableTo, supplierID))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	p.Media = []models.ProductMedia{}
	p.ComputeDerived(time.Now())
	return p, nil
}

// UpdateProduct applies a partial update; nil fields are left unchanged
func (db *Database) UpdateProduct(ctx context.Context, id int, req models.UpdateProductRequest, availableFrom, availableTo *time.Time) error {
	sets := []string{}
	args := []interface{}{id}
	argIndex := 2

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Category != nil {
		add("category", *req.Category)
	}
	if req.Unit != nil {
		add("unit", *req.Unit)
	}
	if req.PricePerUnit != nil {
		add("price_per_unit", *req.PricePerUnit)
	}
	if req.Currency != nil {
		add("currency", *req.Currency)
	}
	if availableFrom != nil {
		add("available_from", *availableFrom)
	}
	if req.AvailableTo != nil {
		// An explicit empty string clears the window end
		if *req.AvailableTo == "" {
			add("available_to", nil)
		} else {
			add("available_to", availableTo)
		}
	}
	if req.Verified != nil {
		add("verified", *req.Verified)
	}

	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE products SET " + strings.Join(sets, ", ") + " WHERE id = $1"
	result, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a listing. Products referenced by order items are
// protected by the schema's RESTRICT action; media rows cascade away.
func (db *Database) DeleteProduct(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetProductMedia returns the media assets attached to a product
func (db *Database) GetProductMedia(ctx context.Context, productID int) ([]models.ProductMedia, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, product_id, image_url, video_url FROM product_media WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product media: %w", err)
	}
	defer rows.Close()

	media := []models.ProductMedia{}
	for rows.Next() {
		var m models.ProductMedia
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ImageURL, &m.VideoURL); err != nil {
			return nil, fmt.Errorf("failed to scan product media: %w", err)
		}
		media = append(media, m)
	}
	return media, rows.Err()
}

// AddProductMedia attaches an uploaded asset to a product
func (db *Database) AddProductMedia(ctx context.Context, productID int, imageURL, videoURL *string) (*models.ProductMedia, error) {
	var m models.ProductMedia
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO product_media (product_id, image_url, video_url) VALUES ($1, $2, $3)
		 RETURNING id, product_id, image_url, video_url`,
		productID, imageURL, videoURL).Scan(&m.ID, &m.ProductID, &m.ImageURL, &m.VideoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to add product media: %w", translateError(err))
	}
	return &m, nil
}

// DeleteProductMedia removes one media asset
func (db *Database) DeleteProductMedia(ctx context.Context, productID, mediaID int) error {
	result, err := db.Pool.Exec(ctx,
		`DELETE FROM product_media WHERE id = $1 AND product_id = $2`, mediaID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product media: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
