package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const maxHistoryLimit = 100

type checkoutRequest struct {
	CustomerName  string                `json:"customerName" validate:"required"`
	CustomerEmail string                `json:"customerEmail" validate:"required"`
	CartItems     []checkoutItemPayload `json:"cartItems" validate:"required,min=1,dive"`
}

type checkoutItemPayload struct {
	ProductID int     `json:"productId" validate:"required,gt=0"`
	Title     string  `json:"title" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Image     string  `json:"image"`
}

// Checkout places an order from the submitted cart snapshot and answers
// with the receipt.
func Checkout(svc checkout.Service, userID string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]checkout.ItemInput, 0, len(payload.CartItems))
		for _, item := range payload.CartItems {
			items = append(items, checkout.ItemInput{
				ProductID: item.ProductID,
				Title:     item.Title,
				Price:     item.Price,
				Quantity:  item.Quantity,
				Image:     item.Image,
			})
		}

		receipt, err := svc.PlaceOrder(r.Context(), userID, checkout.PlaceOrderInput{
			CustomerName:  payload.CustomerName,
			CustomerEmail: payload.CustomerEmail,
			Items:         items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "Order placed successfully", receipt)
	}
}

// GetOrders lists the shopper's order history, newest first. An optional
// limit query bounds the page.
func GetOrders(svc orders.Service, userID string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, maxHistoryLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if limit > 0 && len(history) > limit {
			history = history[:limit]
		}

		if len(history) == 0 {
			responses.WriteSuccess(w, "No orders found", []orders.OrderDTO{})
			return
		}
		responses.WriteList(w, "Orders fetched successfully", history, len(history))
	}
}

// GetOrder fetches one order by id, scoped to the shopper.
func GetOrder(svc orders.Service, userID string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID := chi.URLParam(r, "orderId")
		dto, err := svc.Get(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Order fetched successfully", dto)
	}
}
