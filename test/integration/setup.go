package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
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

// Well-known seed identifiers shared by the integration tests.
var (
	SeedColombiaID    = "prod-colombia"
	SeedTurkishID     = "prod-turkish"
	SeedColombia250ID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	SeedColombia500ID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	SeedTurkish250ID  = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
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

	// Get connection string
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

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
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

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			name_ar VARCHAR(255) NOT NULL DEFAULT '',
			slug VARCHAR(255) NOT NULL UNIQUE,
			parent_id UUID REFERENCES categories(id)
		);

		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(100) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			name_ar VARCHAR(255) NOT NULL DEFAULT '',
			slug VARCHAR(255) NOT NULL UNIQUE,
			base_price DECIMAL(10, 2) NOT NULL,
			sku VARCHAR(100),
			category_id UUID REFERENCES categories(id),
			active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS product_variations (
			id UUID PRIMARY KEY,
			product_id VARCHAR(100) NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			size_grams INTEGER NOT NULL CHECK (size_grams > 0),
			type_id VARCHAR(100),
			bean_id VARCHAR(100),
			price DECIMAL(10, 2),
			stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
			active BOOLEAN NOT NULL DEFAULT true,
			sku VARCHAR(100),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_variations_active_combo
			ON product_variations(product_id, size_grams, coalesce(type_id, ''), coalesce(bean_id, ''))
			WHERE active;

		CREATE TABLE IF NOT EXISTS discounts (
			id UUID PRIMARY KEY,
			product_id VARCHAR(100) REFERENCES products(id),
			variation_id UUID REFERENCES product_variations(id),
			value DECIMAL(10, 2) NOT NULL,
			type VARCHAR(20) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT true
		);

		CREATE TABLE IF NOT EXISTS customers (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			full_name VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_id UUID NOT NULL REFERENCES customers(id),
			full_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL,
			emirate VARCHAR(100) NOT NULL,
			city VARCHAR(100) NOT NULL,
			address TEXT NOT NULL,
			subtotal DECIMAL(10, 2) NOT NULL,
			shipping_cost DECIMAL(10, 2) NOT NULL,
			discount DECIMAL(10, 2) NOT NULL DEFAULT 0,
			total DECIMAL(10, 2) NOT NULL,
			payment_ref VARCHAR(255) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'NEW',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id VARCHAR(100) NOT NULL REFERENCES products(id),
			variation_id UUID NOT NULL REFERENCES product_variations(id),
			name VARCHAR(255) NOT NULL,
			unit_price DECIMAL(10, 2) NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0)
		);

		CREATE TABLE IF NOT EXISTS newsletter_subscribers (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_variations_product_id ON product_variations(product_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCatalogue inserts a small bilingual catalogue: two products with
// variations across sizes and flavour types.
func SeedCatalogue(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id        string
		name      string
		nameAr    string
		slug      string
		basePrice string
		sku       *string
	}{
		{SeedColombiaID, "Colombia Arabica", "كولومبيا أرابيكا", "colombia-arabica", "45.00", strPtr("COL-ARB")},
		{SeedTurkishID, "Turkish Blend", "خلطة تركية", "turkish-blend", "38.00", strPtr("TRK-BLD")},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, name, name_ar, slug, base_price, sku, active)
			VALUES ($1, $2, $3, $4, $5, $6, true)`,
			p.id, p.name, p.nameAr, p.slug, decimal.RequireFromString(p.basePrice), p.sku,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}

	variations := []struct {
		id        uuid.UUID
		productID string
		sizeGrams int
		typeID    *string
		beanID    *string
		price     *string
		stock     int
	}{
		{SeedColombia250ID, SeedColombiaID, 250, nil, nil, nil, 20},
		{SeedColombia500ID, SeedColombiaID, 500, nil, nil, strPtr("80.00"), 10},
		{SeedTurkish250ID, SeedTurkishID, 250, strPtr("cardamom"), strPtr("dark-roast"), nil, 5},
	}

	for _, v := range variations {
		var price *decimal.Decimal
		if v.price != nil {
			d := decimal.RequireFromString(*v.price)
			price = &d
		}
		_, err := pool.Exec(ctx, `
			INSERT INTO product_variations (id, product_id, size_grams, type_id, bean_id, price, stock_quantity, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, true)`,
			v.id, v.productID, v.sizeGrams, v.typeID, v.beanID, price, v.stock,
		)
		if err != nil {
			t.Fatalf("failed to seed variation %s: %v", v.id, err)
		}
	}
}

// SeedDiscount attaches an active percentage discount to a product.
func SeedDiscount(t *testing.T, pool *pgxpool.Pool, productID string, percent string) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		INSERT INTO discounts (id, product_id, value, type, active)
		VALUES ($1, $2, $3, 'PERCENTAGE', true)`,
		uuid.New(), productID, decimal.RequireFromString(percent),
	)
	if err != nil {
		t.Fatalf("failed to seed discount: %v", err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"order_items", "orders", "customers", "newsletter_subscribers",
		"discounts", "product_variations", "products", "categories",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

func strPtr(s string) *string { return &s }
