package cart

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hoangsoi/vinashop-backend/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  original_price NUMERIC,
  images TEXT,
  category TEXT NOT NULL,
  brand TEXT,
  stock INTEGER NOT NULL DEFAULT 0,
  rating NUMERIC NOT NULL DEFAULT 0,
  num_reviews INTEGER NOT NULL DEFAULT 0,
  seller_id TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (user_id, product_id)
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(cartItems).Error)
	return db
}

func mustCreateCartProduct(t *testing.T, db *gorm.DB, price int64) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("Product %s", uuid.NewString()[:8]),
		Price:    decimal.NewFromInt(price),
		Category: "Điện tử",
		Stock:    10,
		IsActive: true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositoryUpsertAccumulatesQuantity(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	product := mustCreateCartProduct(t, db, 100000)

	first := &models.CartItem{ID: uuid.New(), UserID: userID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &models.CartItem{ID: uuid.New(), UserID: userID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, repo.Upsert(ctx, second))

	items, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Quantity)
}

func TestRepositoryListPreloadsProduct(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	product := mustCreateCartProduct(t, db, 250000)

	item := &models.CartItem{ID: uuid.New(), UserID: userID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, repo.Upsert(ctx, item))

	items, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	require.True(t, items[0].Product.Price.Equal(decimal.NewFromInt(250000)))
}

func TestRepositoryUpdateQuantityAndRemove(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	product := mustCreateCartProduct(t, db, 50000)

	require.NoError(t, repo.Upsert(ctx, &models.CartItem{ID: uuid.New(), UserID: userID, ProductID: product.ID, Quantity: 1}))
	require.NoError(t, repo.UpdateQuantity(ctx, userID, product.ID, 5))

	items, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 5, items[0].Quantity)

	require.NoError(t, repo.Remove(ctx, userID, product.ID))
	err = repo.Remove(ctx, userID, product.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound), "expected record not found, got %v", err)
}

func TestRepositoryClear(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	for i := 0; i < 3; i++ {
		product := mustCreateCartProduct(t, db, 1000)
		require.NoError(t, repo.Upsert(ctx, &models.CartItem{ID: uuid.New(), UserID: userID, ProductID: product.ID, Quantity: 1}))
	}

	require.NoError(t, repo.Clear(ctx, userID))

	items, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, items)
}
