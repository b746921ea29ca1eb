package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderLineItem snapshots a cart line at checkout time. Decoupled from the
// live cart so later cart mutations cannot alter a placed order.
type OrderLineItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID int       `gorm:"column:product_id;not null"`
	Title     string    `gorm:"column:title;not null"`
	Price     float64   `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity  int       `gorm:"column:quantity;not null"`
	Image     string    `gorm:"column:image;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (i *OrderLineItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
