package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// CartDTO is the wire shape of a cart, augmented with the derived total and
// line count. itemCount counts distinct lines, not summed quantities.
type CartDTO struct {
	UserID    string        `json:"userId"`
	Items     []CartItemDTO `json:"items"`
	Total     float64       `json:"total"`
	ItemCount int           `json:"itemCount"`
	CreatedAt *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt *time.Time    `json:"updatedAt,omitempty"`
}

type CartItemDTO struct {
	ProductID int     `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

func newCartDTO(cart *models.Cart) *CartDTO {
	items := make([]CartItemDTO, 0, len(cart.Items))
	total := decimal.Zero
	for _, item := range cart.Items {
		items = append(items, CartItemDTO{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}

	createdAt := cart.CreatedAt
	updatedAt := cart.UpdatedAt
	return &CartDTO{
		UserID:    cart.UserID,
		Items:     items,
		Total:     total.Round(2).InexactFloat64(),
		ItemCount: len(items),
		CreatedAt: &createdAt,
		UpdatedAt: &updatedAt,
	}
}

// emptyCartDTO is the synthetic shape returned when no cart document exists.
func emptyCartDTO(userID string) *CartDTO {
	return &CartDTO{
		UserID:    userID,
		Items:     []CartItemDTO{},
		Total:     0,
		ItemCount: 0,
	}
}
