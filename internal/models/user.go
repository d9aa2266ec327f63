package models

import (
	"time"
)

// User represents an account on the marketplace. Capability flags are
// independent booleans: an account can act as both a restaurant and a
// supplier at the same time.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsRestaurant bool      `json:"is_restaurant" db:"is_restaurant"`
	IsSupplier   bool      `json:"is_supplier" db:"is_supplier"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	KYC          bool      `json:"kyc" db:"kyc"`
	Attestation  bool      `json:"attestation" db:"attestation"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SignupRequest represents the request payload for user registration
type SignupRequest struct {
	Username     string `json:"username" binding:"required,min=3"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	IsRestaurant bool   `json:"is_restaurant"`
	IsSupplier   bool   `json:"is_supplier"`
}

// LoginRequest represents the request payload for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful signup or login
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RestaurantProfile is the buyer identity attached to a user account.
// One profile per user.
type RestaurantProfile struct {
	ID                int       `json:"id" db:"id"`
	UserID            string    `json:"user_id" db:"user_id"`
	CompanyName       string    `json:"company_name" db:"company_name"`
	ManagerName       string    `json:"manager_name" db:"manager_name"`
	PreferredCurrency Currency  `json:"preferred_currency" db:"preferred_currency"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// SupplierProfile is the seller identity. Farmer suppliers are the same
// record with is_farmer set and the farmer-only fields populated; there is
// no separate subtype table.
type SupplierProfile struct {
	ID               int       `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	CompanyName      string    `json:"company_name" db:"company_name"`
	Categories       string    `json:"categories" db:"categories"`
	Verified         bool      `json:"verified" db:"verified"`
	Country          string    `json:"country" db:"country"`
	IsFarmer         bool      `json:"is_farmer" db:"is_farmer"`
	FarmName         *string   `json:"farm_name,omitempty" db:"farm_name"`
	OrganicCertified bool      `json:"organic_certified" db:"organic_certified"`
	CertificateURL   *string   `json:"certificate_url,omitempty" db:"certificate_url"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// CreateRestaurantProfileRequest represents the payload for creating a restaurant profile
type CreateRestaurantProfileRequest struct {
	CompanyName       string `json:"company_name" binding:"required"`
	ManagerName       string `json:"manager_name"`
	PreferredCurrency string `json:"preferred_currency"`
}

// CreateSupplierProfileRequest represents the payload for creating a supplier profile
type CreateSupplierProfileRequest struct {
	CompanyName      string  `json:"company_name" binding:"required"`
	Categories       string  `json:"categories"`
	Country          string  `json:"country"`
	IsFarmer         bool    `json:"is_farmer"`
	FarmName         *string `json:"farm_name,omitempty"`
	OrganicCertified bool    `json:"organic_certified"`
	CertificateURL   *string `json:"certificate_url,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
