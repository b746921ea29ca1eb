package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	// foreign_keys is per-connection; pin the pool to one conn so the
	// cascade pragma holds for every statement.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON;").Error)

	carts := `
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartsIdx := `CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_user_id ON carts (user_id);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL REFERENCES carts (id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL,
  title TEXT NOT NULL,
  price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  image TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (cart_id, product_id)
);`
	require.NoError(t, db.Exec(carts).Error)
	require.NoError(t, db.Exec(cartsIdx).Error)
	require.NoError(t, db.Exec(cartItems).Error)
	return db
}

func seedCart(t *testing.T, db *gorm.DB, userID string, items ...models.CartItem) *models.Cart {
	t.Helper()

	cart := &models.Cart{UserID: userID}
	require.NoError(t, db.Create(cart).Error)
	for i := range items {
		items[i].CartID = cart.ID
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return cart
}

func TestRepositoryFindByUser(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedCart(t, db, "shopper-find",
		models.CartItem{ProductID: 1, Title: "Backpack", Price: 109.95, Quantity: 2, Image: "https://img/1.jpg"},
		models.CartItem{ProductID: 2, Title: "T-Shirt", Price: 22.3, Quantity: 1, Image: "https://img/2.jpg"},
	)

	cart, err := repo.FindByUser(ctx, "shopper-find")
	require.NoError(t, err)
	assert.Equal(t, "shopper-find", cart.UserID)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 1, cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[1].ProductID)
}

func TestRepositoryFindByUser_missing(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByUser(context.Background(), "shopper-nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryCreate_duplicateUser(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Cart{UserID: "shopper-dup"}))
	err := repo.Create(ctx, &models.Cart{UserID: "shopper-dup"})
	assert.Error(t, err)
}

func TestRepositoryIncrementItemQuantity(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cart := seedCart(t, db, "shopper-inc",
		models.CartItem{ProductID: 5, Title: "Bracelet", Price: 695, Quantity: 1, Image: "https://img/5.jpg"},
	)

	matched, err := repo.IncrementItemQuantity(ctx, cart.ID, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	reloaded, err := repo.FindByUser(ctx, "shopper-inc")
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 4, reloaded.Items[0].Quantity)

	matched, err = repo.IncrementItemQuantity(ctx, cart.ID, 99, 1)
	require.NoError(t, err)
	assert.Zero(t, matched)
}

func TestRepositorySetItemQuantity(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cart := seedCart(t, db, "shopper-set",
		models.CartItem{ProductID: 7, Title: "Drive", Price: 64, Quantity: 5, Image: "https://img/7.jpg"},
	)

	matched, err := repo.SetItemQuantity(ctx, cart.ID, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	reloaded, err := repo.FindByUser(ctx, "shopper-set")
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Items[0].Quantity)

	matched, err = repo.SetItemQuantity(ctx, cart.ID, 404, 2)
	require.NoError(t, err)
	assert.Zero(t, matched)
}

func TestRepositoryRemoveItem(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cart := seedCart(t, db, "shopper-remove",
		models.CartItem{ProductID: 3, Title: "Jacket", Price: 55.99, Quantity: 1, Image: "https://img/3.jpg"},
		models.CartItem{ProductID: 4, Title: "Ring", Price: 10.99, Quantity: 2, Image: "https://img/4.jpg"},
	)

	require.NoError(t, repo.RemoveItem(ctx, cart.ID, 3))

	reloaded, err := repo.FindByUser(ctx, "shopper-remove")
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 4, reloaded.Items[0].ProductID)

	// Absent line removal succeeds without touching anything.
	require.NoError(t, repo.RemoveItem(ctx, cart.ID, 3))
	reloaded, err = repo.FindByUser(ctx, "shopper-remove")
	require.NoError(t, err)
	assert.Len(t, reloaded.Items, 1)
}

func TestRepositoryDeleteByUser(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cart := seedCart(t, db, "shopper-delete",
		models.CartItem{ProductID: 9, Title: "Monitor", Price: 999.99, Quantity: 1, Image: "https://img/9.jpg"},
	)

	require.NoError(t, repo.DeleteByUser(ctx, "shopper-delete"))

	_, err := repo.FindByUser(ctx, "shopper-delete")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var orphaned int64
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("cart_id = ?", cart.ID).
		Count(&orphaned).Error)
	assert.Zero(t, orphaned)
}

func TestRepositoryWithTx(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.WithTx(tx).Create(ctx, &models.Cart{ID: uuid.New(), UserID: "shopper-tx"})
	})
	require.NoError(t, err)

	_, err = repo.FindByUser(ctx, "shopper-tx")
	assert.NoError(t, err)
}
