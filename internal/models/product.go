package models

import (
	"fmt"
	"time"
)

// Currency is a closed choice of settlement currencies
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyRUB Currency = "RUB"
)

// IsValid checks if the currency is one of the supported choices
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyEUR, CurrencyUSD, CurrencyRUB:
		return true
	default:
		return false
	}
}

// Symbol returns the display symbol for the currency. Unmapped currency
// codes render with no symbol prefix.
func (c Currency) Symbol() string {
	switch c {
	case CurrencyEUR:
		return "€"
	case CurrencyUSD:
		return "$"
	case CurrencyRUB:
		return "₽"
	default:
		return ""
	}
}

// Product represents a sellable good listed by a supplier
type Product struct {
	ID            int            `json:"id" db:"id"`
	Name          string         `json:"name" db:"name"`
	Category      string         `json:"category" db:"category"`
	Unit          string         `json:"unit" db:"unit"`
	PricePerUnit  float64        `json:"price_per_unit" db:"price_per_unit"`
	Currency      Currency       `json:"currency" db:"currency"`
	AvailableFrom time.Time      `json:"available_from" db:"available_from"`
	AvailableTo   *time.Time     `json:"available_to,omitempty" db:"available_to"`
	SupplierID    int            `json:"supplier" db:"supplier_id"`
	Verified      bool           `json:"verified" db:"verified"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	Media         []ProductMedia `json:"media"`
	// Derived fields, recomputed per read
	IsAvailable  bool   `json:"is_available"`
	DisplayPrice string `json:"display_price"`
}

// AvailableOn reports whether the product is orderable on the given day.
// With available_to unset the window is open-ended.
func (p *Product) AvailableOn(day time.Time) bool {
	d := dateOnly(day)
	from := dateOnly(p.AvailableFrom)
	if from.After(d) {
		return false
	}
	if p.AvailableTo != nil && d.After(dateOnly(*p.AvailableTo)) {
		return false
	}
	return true
}

// FormatDisplayPrice renders the price with the currency symbol prefix
func (p *Product) FormatDisplayPrice() string {
	return fmt.Sprintf("%s%.2f", p.Currency.Symbol(), p.PricePerUnit)
}

// ComputeDerived fills the read-only computed fields
func (p *Product) ComputeDerived(now time.Time) {
	p.IsAvailable = p.AvailableOn(now)
	p.DisplayPrice = p.FormatDisplayPrice()
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ProductMedia represents an image or video asset attached to a product
type ProductMedia struct {
	ID        int     `json:"id" db:"id"`
	ProductID int     `json:"product_id" db:"product_id"`
	ImageURL  *string `json:"image,omitempty" db:"image_url"`
	VideoURL  *string `json:"video,omitempty" db:"video_url"`
}

// CreateProductRequest represents the payload for listing a product
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	Unit          string  `json:"unit"`
	PricePerUnit  float64 `json:"price_per_unit" binding:"required,gt=0"`
	Currency      string  `json:"currency"`
	AvailableFrom string  `json:"available_from" binding:"required"` // YYYY-MM-DD
	AvailableTo   *string `json:"available_to,omitempty"`            // YYYY-MM-DD
	SupplierID    int     `json:"supplier"`
}

// UpdateProductRequest represents a partial update; nil fields are left unchanged
type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Unit          *string  `json:"unit,omitempty"`
	PricePerUnit  *float64 `json:"price_per_unit,omitempty"`
	Currency      *string  `json:"currency,omitempty"`
	AvailableFrom *string  `json:"available_from,omitempty"`
	AvailableTo   *string  `json:"available_to,omitempty"`
	Verified      *bool    `json:"verified,omitempty"`
}

// ProductWaitlist records a restaurant's demand signal for a product that
// is unavailable or not yet in season. notified flips once an alert went out.
type ProductWaitlist struct {
	ID              int       `json:"id" db:"id"`
	ProductID       int       `json:"product" db:"product_id"`
	RestaurantID    int       `json:"restaurant" db:"restaurant_id"`
	DesiredQuantity float64   `json:"desired_quantity" db:"desired_quantity"`
	Notified        bool      `json:"notified" db:"notified"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// CreateWaitlistRequest represents the payload for joining a product waitlist
type CreateWaitlistRequest struct {
	ProductID       int     `json:"product" binding:"required"`
	RestaurantID    int     `json:"restaurant"`
	DesiredQuantity float64 `json:"desired_quantity" binding:"required,gt=0"`
}

// UpdateWaitlistRequest represents a partial waitlist entry update
type UpdateWaitlistRequest struct {
	Notified *bool `json:"notified,omitempty"`
}
