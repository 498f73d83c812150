package integration

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container with the full schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing. Mirrors
// migrations/001_init.sql.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(30) NOT NULL DEFAULT '',
			role VARCHAR(20) NOT NULL DEFAULT 'customer',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT users_email_key UNIQUE (email)
		);

		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			brand VARCHAR(100) NOT NULL DEFAULT '',
			category VARCHAR(100) NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL,
			stock_quantity INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT products_stock_quantity_check CHECK (stock_quantity >= 0)
		);

		CREATE TABLE IF NOT EXISTS delivery_locations (
			id UUID PRIMARY KEY,
			city VARCHAR(100) NOT NULL,
			shipping_cost DECIMAL(10, 2) NOT NULL DEFAULT 0,
			pickup_location VARCHAR(255) NOT NULL DEFAULT '',
			pickup_phone VARCHAR(30) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS coupons (
			id UUID PRIMARY KEY,
			code VARCHAR(100) NOT NULL,
			discount_type VARCHAR(20) NOT NULL,
			discount_value DECIMAL(10, 2) NOT NULL,
			min_order_amount DECIMAL(10, 2) NOT NULL DEFAULT 0,
			usage_limit INTEGER,
			used_count INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT coupons_code_key UNIQUE (code)
		);

		CREATE TABLE IF NOT EXISTS cart_items (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			product_id UUID NOT NULL REFERENCES products (id) ON DELETE CASCADE,
			quantity INTEGER NOT NULL,
			size VARCHAR(20),
			color VARCHAR(50),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT cart_items_quantity_check CHECK (quantity > 0),
			CONSTRAINT cart_items_user_product_key UNIQUE NULLS NOT DISTINCT (user_id, product_id, size, color)
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users (id),
			order_number VARCHAR(30) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			payment_method VARCHAR(30) NOT NULL,
			payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
			subtotal DECIMAL(10, 2) NOT NULL,
			shipping_amount DECIMAL(10, 2) NOT NULL DEFAULT 0,
			discount_amount DECIMAL(10, 2) NOT NULL DEFAULT 0,
			total_amount DECIMAL(10, 2) NOT NULL,
			coupon_id UUID REFERENCES coupons (id),
			shipping_address JSONB NOT NULL,
			tracking_number VARCHAR(100),
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT orders_order_number_key UNIQUE (order_number)
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
			product_id UUID NOT NULL REFERENCES products (id),
			quantity INTEGER NOT NULL,
			unit_price DECIMAL(10, 2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT order_items_quantity_check CHECK (quantity > 0)
		);
	`

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}
