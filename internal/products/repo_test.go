package products

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
	"github.com/hoangsoi/vinashop-backend/pkg/pagination"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
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
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func mustCreateTestProduct(t *testing.T, db *gorm.DB, category string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("Product %s", uuid.NewString()[:8]),
		Price:    decimal.NewFromInt(100000),
		Category: category,
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositoryDecrementStockGuard(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db, "Điện tử", 5)

	require.NoError(t, repo.DecrementStock(ctx, product.ID, 3))

	got, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Stock)

	err = repo.DecrementStock(ctx, product.ID, 3)
	require.True(t, errors.Is(err, ErrOutOfStock), "expected out of stock, got %v", err)

	got, err = repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Stock, "stock must be untouched after rejected decrement")
}

func TestRepositoryDecrementStockUnknownProduct(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	err := repo.DecrementStock(context.Background(), uuid.New(), 1)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound), "expected record not found, got %v", err)
}

func TestRepositoryIncrementStock(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db, "VIP", 1)

	require.NoError(t, repo.IncrementStock(ctx, product.ID, 4))

	got, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.Stock)
}

func TestRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		mustCreateTestProduct(t, db, "Mỹ phẩm", 10)
	}
	mustCreateTestProduct(t, db, "Điện lạnh", 10)
	inactive := mustCreateTestProduct(t, db, "Mỹ phẩm", 10)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", inactive.ID).Update("is_active", false).Error)

	list, page, err := repo.List(ctx, ListFilter{Category: "Mỹ phẩm", OnlyActive: true}, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.EqualValues(t, 3, page.Total)
	require.Equal(t, 2, page.TotalPages)
}
