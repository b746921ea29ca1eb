package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'completed',
  timestamp DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id INTEGER NOT NULL,
  title TEXT NOT NULL,
  price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  image TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(lineItems).Error)
	return db
}

func createTestOrder(t *testing.T, db *gorm.DB, userID string, total float64, placed time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		UserID:        userID,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Total:         total,
		Status:        enums.OrderStatusCompleted,
		Timestamp:     placed,
		Items: []models.OrderLineItem{
			{ProductID: 1, Title: "Backpack", Price: total, Quantity: 1, Image: "https://img/1.jpg"},
		},
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	placed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	order := &models.Order{
		UserID:        "shopper-create",
		CustomerName:  "Grace Hopper",
		CustomerEmail: "grace@example.com",
		Total:         132.25,
		Status:        enums.OrderStatusCompleted,
		Timestamp:     placed,
		Items: []models.OrderLineItem{
			{ProductID: 1, Title: "Backpack", Price: 109.95, Quantity: 1, Image: "https://img/1.jpg"},
			{ProductID: 2, Title: "T-Shirt", Price: 22.3, Quantity: 1, Image: "https://img/2.jpg"},
		},
	}
	require.NoError(t, repo.Create(ctx, order))
	require.NotEqual(t, uuid.Nil, order.ID)

	found, err := repo.FindByIDForUser(ctx, order.ID, "shopper-create")
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", found.CustomerName)
	assert.Equal(t, 132.25, found.Total)
	assert.Equal(t, enums.OrderStatusCompleted, found.Status)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "Backpack", found.Items[0].Title)
}

func TestRepositoryFindByIDForUser_scopedToUser(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := createTestOrder(t, db, "shopper-owner", 50, time.Now().UTC())

	_, err := repo.FindByIDForUser(ctx, order.ID, "shopper-other")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByUser_newestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	oldest := createTestOrder(t, db, "shopper-list", 10, base)
	newest := createTestOrder(t, db, "shopper-list", 30, base.Add(48*time.Hour))
	middle := createTestOrder(t, db, "shopper-list", 20, base.Add(24*time.Hour))
	createTestOrder(t, db, "shopper-unrelated", 99, base)

	listed, err := repo.ListByUser(ctx, "shopper-list")
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, newest.ID, listed[0].ID)
	assert.Equal(t, middle.ID, listed[1].ID)
	assert.Equal(t, oldest.ID, listed[2].ID)
	require.Len(t, listed[0].Items, 1)
}

func TestRepositoryListByUser_empty(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	listed, err := repo.ListByUser(context.Background(), "shopper-no-orders")
	require.NoError(t, err)
	assert.Empty(t, listed)
}
