package orders

import (
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// OrderDTO is the wire shape of a placed order. Line items are keyed
// "cartItems" because they snapshot the cart as submitted at checkout.
type OrderDTO struct {
	OrderID       string             `json:"orderId"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	CartItems     []OrderLineItemDTO `json:"cartItems"`
	Total         float64            `json:"total"`
	Status        enums.OrderStatus  `json:"status"`
	Timestamp     time.Time          `json:"timestamp"`
}

type OrderLineItemDTO struct {
	ProductID int     `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

func newOrderDTO(order *models.Order) *OrderDTO {
	items := make([]OrderLineItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderLineItemDTO{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	return &OrderDTO{
		OrderID:       order.ID.String(),
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CartItems:     items,
		Total:         order.Total,
		Status:        order.Status,
		Timestamp:     order.Timestamp,
	}
}

func newOrderDTOs(orders []models.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, *newOrderDTO(&orders[i]))
	}
	return dtos
}
