package integration

import (
	"context"
	"testing"
	"time"

	"roastery/internal/model"
	"roastery/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetAll returns seeded products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		products, err := repo.GetAll(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, products, 2)
		assert.Equal(t, SeedColombiaID, products[0].ID)
	})

	t.Run("GetByID returns correct product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		product, err := repo.GetByID(ctx, SeedColombiaID)
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "Colombia Arabica", product.Name)
		assert.Equal(t, "كولومبيا أرابيكا", product.NameAr)
		assert.True(t, product.BasePrice.Equal(decimal.RequireFromString("45.00")))
	})

	t.Run("GetBySlug returns correct product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		product, err := repo.GetBySlug(ctx, "turkish-blend")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, SeedTurkishID, product.ID)
	})

	t.Run("SearchByNormalizedSlug matches name substring", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		product, err := repo.SearchByNormalizedSlug(ctx, "colombia arabica")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, SeedColombiaID, product.ID)
	})

	t.Run("SearchByNormalizedSlug matches SKU substring", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		product, err := repo.SearchByNormalizedSlug(ctx, "trk")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, SeedTurkishID, product.ID)
	})

	t.Run("SearchByNormalizedSlug returns nil for no match", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		product, err := repo.SearchByNormalizedSlug(ctx, "ethiopian yirgacheffe")
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("GetVariations returns active variations only", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		// Deactivate the 500g variation
		_, err := testDB.Pool.Exec(ctx,
			"UPDATE product_variations SET active = false WHERE id = $1", SeedColombia500ID)
		require.NoError(t, err)

		variations, err := repo.GetVariations(ctx, SeedColombiaID, true)
		require.NoError(t, err)
		require.Len(t, variations, 1)
		assert.Equal(t, SeedColombia250ID, variations[0].ID)

		all, err := repo.GetVariations(ctx, SeedColombiaID, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("GetActiveDiscount prefers variation-level discount", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		// Product-level 10% plus a variation-level 20% on the 250g bag
		SeedDiscount(t, testDB.Pool, SeedColombiaID, "10")
		_, err := testDB.Pool.Exec(ctx, `
			INSERT INTO discounts (id, variation_id, value, type, active)
			VALUES ($1, $2, 20, 'PERCENTAGE', true)`,
			uuid.New(), SeedColombia250ID)
		require.NoError(t, err)

		discount, err := repo.GetActiveDiscount(ctx, SeedColombiaID, SeedColombia250ID)
		require.NoError(t, err)
		require.NotNil(t, discount)
		assert.True(t, discount.Value.Equal(decimal.NewFromInt(20)))

		// The 500g bag only sees the product-level discount
		discount, err = repo.GetActiveDiscount(ctx, SeedColombiaID, SeedColombia500ID)
		require.NoError(t, err)
		require.NotNil(t, discount)
		assert.True(t, discount.Value.Equal(decimal.NewFromInt(10)))
	})

	t.Run("GetActiveDiscount returns nil when none applies", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		discount, err := repo.GetActiveDiscount(ctx, SeedColombiaID, SeedColombia250ID)
		require.NoError(t, err)
		assert.Nil(t, discount)
	})
}

func seedOrderFixture(t *testing.T, testDB *TestDB, repo repository.OrderRepository, customers repository.CustomerRepository) (*model.Order, []model.OrderItem) {
	t.Helper()

	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	customer := &model.Customer{
		ID:        uuid.New(),
		Email:     "fatima@example.com",
		FullName:  "Fatima Al Mansouri",
		Phone:     "+971501234567",
		CreatedAt: time.Now(),
	}
	require.NoError(t, customers.Create(ctx, tx, customer))

	now := time.Now()
	order := &model.Order{
		ID:           uuid.New(),
		CustomerID:   customer.ID,
		FullName:     customer.FullName,
		Email:        customer.Email,
		Phone:        customer.Phone,
		Emirate:      "Dubai",
		City:         "Jumeirah",
		Address:      "Villa 12, Street 8b, Jumeirah 1",
		Subtotal:     decimal.RequireFromString("90.00"),
		ShippingCost: decimal.RequireFromString("25.00"),
		Discount:     decimal.Zero,
		Total:        decimal.RequireFromString("115.00"),
		PaymentRef:   "pi_test_123",
		Status:       model.OrderStatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.CreateOrder(ctx, tx, order))

	items := []model.OrderItem{
		{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   SeedColombiaID,
			VariationID: SeedColombia250ID,
			Name:        "Colombia Arabica",
			UnitPrice:   decimal.RequireFromString("45.00"),
			Quantity:    2,
		},
	}
	require.NoError(t, repo.CreateOrderItems(ctx, tx, items))
	require.NoError(t, tx.Commit(ctx))

	return order, items
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)
	customers := repository.NewCustomerRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("CreateOrder and GetByID round trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		order, items := seedOrderFixture(t, testDB, repo, customers)

		got, gotItems, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, model.OrderStatusNew, got.Status)
		assert.True(t, got.Total.Equal(order.Total))
		require.Len(t, gotItems, 1)
		assert.Equal(t, items[0].VariationID, gotItems[0].VariationID)
	})

	t.Run("GetByID returns nil for non-existent order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order, items, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, order)
		assert.Nil(t, items)
	})

	t.Run("DecrementStock enforces availability", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		// The cardamom variation is seeded with 5 in stock.
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		require.NoError(t, repo.DecrementStock(ctx, tx, SeedTurkish250ID, 3))

		err = repo.DecrementStock(ctx, tx, SeedTurkish250ID, 3)
		require.Error(t, err)
		assert.Equal(t, model.ErrInsufficientStock, err)

		require.NoError(t, tx.Rollback(ctx))

		// Rollback restored the original quantity.
		var stock int
		err = testDB.Pool.QueryRow(ctx,
			"SELECT stock_quantity FROM product_variations WHERE id = $1", SeedTurkish250ID).Scan(&stock)
		require.NoError(t, err)
		assert.Equal(t, 5, stock)
	})

	t.Run("UpdateStatus persists the transition", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		order, _ := seedOrderFixture(t, testDB, repo, customers)

		updated, err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusProcessing)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, model.OrderStatusProcessing, updated.Status)
	})

	t.Run("UpdateStatus returns nil for unknown order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		updated, err := repo.UpdateStatus(ctx, uuid.New(), model.OrderStatusShipped)
		require.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestCustomerRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewCustomerRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetByEmail is case-insensitive", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		tx, err := testDB.Pool.Begin(ctx)
		require.NoError(t, err)

		customer := &model.Customer{
			ID:        uuid.New(),
			Email:     "Fatima@Example.com",
			FullName:  "Fatima Al Mansouri",
			Phone:     "+971501234567",
			CreatedAt: time.Now(),
		}
		require.NoError(t, repo.Create(ctx, tx, customer))

		got, err := repo.GetByEmail(ctx, tx, "FATIMA@EXAMPLE.COM")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, customer.ID, got.ID)

		require.NoError(t, tx.Commit(ctx))
	})

	t.Run("Subscribe is idempotent", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		created, err := repo.Subscribe(ctx, "fatima@example.com")
		require.NoError(t, err)
		assert.True(t, created)

		created, err = repo.Subscribe(ctx, "Fatima@Example.com")
		require.NoError(t, err)
		assert.False(t, created)

		var count int
		err = testDB.Pool.QueryRow(ctx, "SELECT count(*) FROM newsletter_subscribers").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
