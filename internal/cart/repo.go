package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository persists the single cart document per shopper.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByUser(ctx context.Context, userID string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	AddItem(ctx context.Context, item *models.CartItem) error
	IncrementItemQuantity(ctx context.Context, cartID uuid.UUID, productID, delta int) (int64, error)
	SetItemQuantity(ctx context.Context, cartID uuid.UUID, productID, quantity int) (int64, error)
	RemoveItem(ctx context.Context, cartID uuid.UUID, productID int) error
	DeleteByUser(ctx context.Context, userID string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *repository) Create(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *repository) AddItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// IncrementItemQuantity merges a duplicate add by bumping the stored
// quantity in place. Returns the number of matched lines so the caller can
// fall back to an insert.
func (r *repository) IncrementItemQuantity(ctx context.Context, cartID uuid.UUID, productID, delta int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	return res.RowsAffected, res.Error
}

// SetItemQuantity overwrites a line's quantity (absolute set, not increment).
func (r *repository) SetItemQuantity(ctx context.Context, cartID uuid.UUID, productID, quantity int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", quantity)
	return res.RowsAffected, res.Error
}

// RemoveItem pulls the matching line. Removing an absent line is a no-op,
// not an error.
func (r *repository) RemoveItem(ctx context.Context, cartID uuid.UUID, productID int) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

func (r *repository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Cart{}).Error
}
