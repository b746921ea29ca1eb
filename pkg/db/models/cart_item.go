package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is a product-level line inside a Cart. Identity within a cart is
// the upstream product id; duplicate product ids merge by quantity instead
// of producing a second row.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID int       `gorm:"column:product_id;not null"`
	Title     string    `gorm:"column:title;not null"`
	Price     float64   `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity  int       `gorm:"column:quantity;not null"`
	Image     string    `gorm:"column:image;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (i *CartItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
