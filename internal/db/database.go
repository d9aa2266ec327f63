package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database holds the database connection pool
type Database struct {
	Pool *pgxpool.Pool
}

// Config holds database configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewDatabase creates a new database connection with retry logic for serverless databases
func NewDatabase() (*Database, error) {
	return NewDatabaseWithRetry(5, time.Second)
}

// NewDatabaseWithRetry creates a new database connection with configurable retry logic
func NewDatabaseWithRetry(maxRetries int, initialDelay time.Duration) (*Database, error) {
	// Prefer DATABASE_URL if provided (single DSN)
	var poolConfig *pgxpool.Config
	var err error
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		poolConfig, err = pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
	} else {
		config := getConfigFromEnv()

		var connStr string
		if config.Password == "" {
			connStr = fmt.Sprintf(
				"host=%s port=%d user=%s dbname=%s sslmode=%s",
				config.Host, config.Port, config.User, config.DBName, config.SSLMode,
			)
		} else {
			connStr = fmt.Sprintf(
				"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
			)
		}

		poolConfig, err = pgxpool.ParseConfig(connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse database config: %w", err)
		}
	}

	// Set pool settings
	poolConfig.MaxConns = 30
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	// Prefer simple protocol (no prepared statements) to be pooler friendly
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	var pool *pgxpool.Pool
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("[DB] Connection attempt %d/%d to database %s@%s:%d",
			attempt, maxRetries, poolConfig.ConnConfig.User, poolConfig.ConnConfig.Host, poolConfig.ConnConfig.Port)

		pool, err = pgxpool.NewWithConfig(context.Background(), poolConfig)
		if err != nil {
			lastErr = fmt.Errorf("failed to create connection pool: %w", err)
			log.Printf("[DB] Failed to create pool (attempt %d): %v", attempt, err)
			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt-1) * initialDelay)
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pool.Ping(ctx)
		cancel()

		if err == nil {
			log.Printf("[DB] Successfully connected to database on attempt %d", attempt)
			return &Database{Pool: pool}, nil
		}

		lastErr = fmt.Errorf("failed to ping database: %w", err)
		log.Printf("[DB] Connection failed (attempt %d): %v", attempt, err)
		pool.Close()

		if attempt < maxRetries {
			time.Sleep(time.Duration(attempt) * initialDelay)
		}
	}

	return nil, lastErr
}

// getConfigFromEnv reads the discrete DB_* environment variables
func getConfigFromEnv() Config {
	config := Config{
		Host:     getEnv("DB_HOST", "localhost"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "restockhub_db"),
		SSLMode:  getEnv("DB_SSLMODE", "prefer"),
	}

	portStr := getEnv("DB_PORT", "5432")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Printf("Invalid DB_PORT value: %s, using default 5432", portStr)
		port = 5432
	}
	config.Port = port

	return config
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Close closes the database connection pool
func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Health checks the database connection
func (db *Database) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// InitSchema ensures all marketplace tables exist (idempotent)
func (db *Database) InitSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username VARCHAR(150) UNIQUE NOT NULL,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			is_restaurant BOOLEAN DEFAULT FALSE,
			is_supplier BOOLEAN DEFAULT FALSE,
			is_admin BOOLEAN DEFAULT FALSE,
			kyc BOOLEAN DEFAULT FALSE,
			attestation BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS restaurant_profiles (
			id SERIAL PRIMARY KEY,
			user_id UUID UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			company_name VARCHAR(255) NOT NULL,
			manager_name VARCHAR(255) DEFAULT '',
			preferred_currency VARCHAR(3) DEFAULT 'EUR',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS supplier_profiles (
			id SERIAL PRIMARY KEY,
			user_id UUID UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			company_name VARCHAR(255) NOT NULL,
			categories TEXT DEFAULT '',
			verified BOOLEAN DEFAULT FALSE,
			country VARCHAR(64) DEFAULT '',
			is_farmer BOOLEAN DEFAULT FALSE,
			farm_name VARCHAR(255),
			organic_certified BOOLEAN DEFAULT FALSE,
			certificate_url VARCHAR(512),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL,
			unit VARCHAR(50) DEFAULT 'kg',
			price_per_unit NUMERIC(10,2) NOT NULL,
			currency VARCHAR(3) DEFAULT 'EUR',
			available_from DATE NOT NULL,
			available_to DATE,
			supplier_id INTEGER NOT NULL REFERENCES supplier_profiles(id) ON DELETE CASCADE,
			verified BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS product_media (
			id SERIAL PRIMARY KEY,
			product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			image_url VARCHAR(512),
			video_url VARCHAR(512)
		);

		CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			restaurant_id INTEGER NOT NULL REFERENCES restaurant_profiles(id) ON DELETE CASCADE,
			delivery_date DATE NOT NULL,
			status VARCHAR(50) DEFAULT 'pending',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
			quantity NUMERIC(10,2) NOT NULL,
			unit_price_snapshot NUMERIC(10,2) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS offers (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			supplier_id INTEGER NOT NULL REFERENCES supplier_profiles(id) ON DELETE CASCADE,
			price NUMERIC(10,2) NOT NULL,
			delivery_eta DATE NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS preorders (
			id SERIAL PRIMARY KEY,
			restaurant_id INTEGER NOT NULL REFERENCES restaurant_profiles(id) ON DELETE CASCADE,
			supplier_id INTEGER NOT NULL REFERENCES supplier_profiles(id) ON DELETE CASCADE,
			product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			quantity NUMERIC(10,2) NOT NULL,
			delivery_date DATE NOT NULL,
			status VARCHAR(50) DEFAULT 'reserved',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS calendar_events (
			id SERIAL PRIMARY KEY,
			date DATE NOT NULL,
			restaurant_id INTEGER REFERENCES restaurant_profiles(id) ON DELETE CASCADE,
			supplier_id INTEGER REFERENCES supplier_profiles(id) ON DELETE CASCADE,
			order_id INTEGER REFERENCES orders(id) ON DELETE CASCADE,
			preorder_id INTEGER REFERENCES preorders(id) ON DELETE CASCADE,
			event_type VARCHAR(50) NOT NULL,
			status VARCHAR(50) DEFAULT 'scheduled'
		);

		CREATE TABLE IF NOT EXISTS reviews (
			id SERIAL PRIMARY KEY,
			reviewer_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			target_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT DEFAULT '',
			image_url VARCHAR(512),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS favorite_partners (
			id SERIAL PRIMARY KEY,
			restaurant_id INTEGER NOT NULL REFERENCES restaurant_profiles(id) ON DELETE CASCADE,
			partner_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			UNIQUE (restaurant_id, partner_user_id)
		);

		CREATE TABLE IF NOT EXISTS product_waitlist (
			id SERIAL PRIMARY KEY,
			product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			restaurant_id INTEGER NOT NULL REFERENCES restaurant_profiles(id) ON DELETE CASCADE,
			desired_quantity NUMERIC(10,2) NOT NULL,
			notified BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS subscription_plans (
			id SERIAL PRIMARY KEY,
			name VARCHAR(50) NOT NULL,
			price NUMERIC(10,2) DEFAULT 0,
			features JSONB DEFAULT '{}'
		);

		CREATE TABLE IF NOT EXISTS user_subscriptions (
			id SERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			plan_id INTEGER NOT NULL REFERENCES subscription_plans(id) ON DELETE CASCADE,
			start_date DATE DEFAULT CURRENT_DATE,
			end_date DATE,
			active BOOLEAN DEFAULT TRUE
		);

		CREATE INDEX IF NOT EXISTS idx_products_supplier ON products (supplier_id);
		CREATE INDEX IF NOT EXISTS idx_products_category ON products (category);
		CREATE INDEX IF NOT EXISTS idx_orders_restaurant ON orders (restaurant_id);
		CREATE INDEX IF NOT EXISTS idx_offers_order_price ON offers (order_id, price, delivery_eta);
		CREATE INDEX IF NOT EXISTS idx_calendar_date ON calendar_events (date);
		CREATE INDEX IF NOT EXISTS idx_reviews_target ON reviews (target_id, created_at);
		CREATE INDEX IF NOT EXISTS idx_waitlist_product ON product_waitlist (product_id, notified);
	`

	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
