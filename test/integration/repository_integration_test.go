package integration

import (
	"context"
	"testing"
	"time"

	"loja-rosa/internal/model"
	"loja-rosa/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
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
		SeedProducts(t, testDB.Pool)

		products, err := repo.GetAll(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, products, 5)
		assert.Equal(t, "P001", products[0].ID)
	})

	t.Run("GetAll with pagination", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		products, err := repo.GetAll(ctx, 2, 0)
		require.NoError(t, err)
		assert.Len(t, products, 2)

		products, err = repo.GetAll(ctx, 2, 2)
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("GetByID returns correct product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		product, err := repo.GetByID(ctx, "P001")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "P001", product.ID)
		assert.Equal(t, "Farinha de Milho", product.Name)
		assert.Equal(t, 3.49, product.Price)
		assert.Equal(t, "mercearia", product.CategoryID)
		assert.Equal(t, 13, product.IvaRate)
	})

	t.Run("GetByID returns nil for unknown product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		product, err := repo.GetByID(ctx, "P999")
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("ValidateProductsExist", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		err := repo.ValidateProductsExist(ctx, []string{"P001", "P002"})
		require.NoError(t, err)

		err = repo.ValidateProductsExist(ctx, []string{"P001", "P999"})
		require.ErrorIs(t, err, model.ErrProductNotFound)
	})
}

func testOrder() *model.Order {
	promoCode := "BEMVINDO10"
	return &model.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-1736935200000",
		Items: []model.LineItem{
			{ProductID: "P001", UnitPrice: 3.49, Quantity: 2, IvaRate: 13, CategoryID: "mercearia"},
			{ProductID: "P005", UnitPrice: 4.25, Quantity: 1, IvaRate: 23, CategoryID: "outros"},
		},
		Subtotal:    11.23,
		Tax:         1.89,
		DeliveryFee: 2.00,
		Discount:    10.00,
		Total:       5.12,
		Address: model.Address{
			ID:         "addr-1",
			Name:       "Casa",
			Street:     "Rua Luís de Camões",
			Number:     "12",
			City:       "Almada",
			PostalCode: "2800-045",
			Country:    "Portugal",
		},
		DeliveryMethod: model.DeliveryMethod{
			ID: "standard", Name: "Entrega Standard", EstimatedDays: "3-5 dias", Cost: 2.00,
		},
		PaymentMethod: model.PaymentMethod{
			ID: "card", Name: "Cartão de Crédito",
		},
		PromoCode:         &promoCode,
		Status:            model.OrderStatusPending,
		EstimatedDelivery: time.Date(2025, time.January, 18, 0, 0, 0, 0, time.UTC),
		CreatedAt:         time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	createOrder := func(t *testing.T, order *model.Order) {
		t.Helper()
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		require.NoError(t, repo.CreateOrderItems(ctx, tx, order.ID, order.Items))
		require.NoError(t, tx.Commit(ctx))
	}

	t.Run("create and load round trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		order := testOrder()
		createOrder(t, order)

		loaded, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)

		assert.Equal(t, order.OrderNumber, loaded.OrderNumber)
		assert.Equal(t, order.Subtotal, loaded.Subtotal)
		assert.Equal(t, order.Total, loaded.Total)
		assert.Equal(t, model.OrderStatusPending, loaded.Status)
		assert.Equal(t, "Almada", loaded.Address.City)
		assert.Equal(t, "standard", loaded.DeliveryMethod.ID)
		assert.Equal(t, "card", loaded.PaymentMethod.ID)
		require.NotNil(t, loaded.PromoCode)
		assert.Equal(t, "BEMVINDO10", *loaded.PromoCode)
		require.Len(t, loaded.Items, 2)
		assert.Equal(t, "P001", loaded.Items[0].ProductID)
		assert.Equal(t, 2, loaded.Items[0].Quantity)
	})

	t.Run("GetByID returns nil for unknown order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		loaded, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("UpdateStatus compare-and-set", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		order := testOrder()
		createOrder(t, order)

		updated, err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusPending, model.OrderStatusConfirmed)
		require.NoError(t, err)
		assert.True(t, updated)

		// Second transition from pending no longer matches
		updated, err = repo.UpdateStatus(ctx, order.ID, model.OrderStatusPending, model.OrderStatusConfirmed)
		require.NoError(t, err)
		assert.False(t, updated)

		loaded, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusConfirmed, loaded.Status)
	})

	t.Run("rollback leaves no partial order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		order := testOrder()
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		require.NoError(t, tx.Rollback(ctx))

		loaded, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})
}
