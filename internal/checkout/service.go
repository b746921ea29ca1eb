package checkout

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// emailPattern matches the storefront's permissive address check: dotted or
// dashed local and domain parts with a 2-3 letter TLD.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// transactor runs a function inside a single database transaction.
// *db.Client satisfies it.
type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service turns a submitted cart into an immutable order and clears the
// shopper's cart in the same transaction.
type Service interface {
	PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*Receipt, error)
}

// Receipt is the condensed confirmation returned to the client. The full
// order is available afterwards through the order history endpoints.
type Receipt struct {
	OrderID       string            `json:"orderId"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	Total         float64           `json:"total"`
	ItemCount     int               `json:"itemCount"`
	Timestamp     time.Time         `json:"timestamp"`
	Status        enums.OrderStatus `json:"status"`
}

// PlaceOrderInput is the checkout payload as submitted by the client. The
// items are taken at face value; checkout does not re-read the stored cart.
type PlaceOrderInput struct {
	CustomerName  string
	CustomerEmail string
	Items         []ItemInput
}

type ItemInput struct {
	ProductID int
	Title     string
	Price     float64
	Quantity  int
	Image     string
}

type service struct {
	tx        transactor
	ordersRep orders.Repository
	cartRep   cart.Repository
	now       func() time.Time
}

// NewService wires the checkout orchestrator.
func NewService(tx transactor, ordersRepo orders.Repository, cartRepo cart.Repository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transactor required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &service{
		tx:        tx,
		ordersRep: ordersRepo,
		cartRep:   cartRepo,
		now:       time.Now,
	}, nil
}

func (s *service) PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*Receipt, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	name := strings.TrimSpace(input.CustomerName)
	email := strings.TrimSpace(input.CustomerEmail)
	if name == "" || email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			"Missing required fields: customerName, customerEmail")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Cart is empty. Cannot checkout")
	}
	if !emailPattern.MatchString(email) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid email format")
	}

	total, err := totalOf(input.Items)
	if err != nil {
		return nil, err
	}

	lineItems := make([]models.OrderLineItem, 0, len(input.Items))
	for _, item := range input.Items {
		lineItems = append(lineItems, models.OrderLineItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	order := &models.Order{
		UserID:        userID,
		CustomerName:  name,
		CustomerEmail: email,
		Total:         total,
		Status:        enums.OrderStatusCompleted,
		Timestamp:     s.now().UTC(),
		Items:         lineItems,
	}

	// Order insert and cart clear commit or roll back together; a placed
	// order never coexists with its source cart.
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ordersRep.WithTx(tx).Create(ctx, order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if err := s.cartRep.WithTx(tx).DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "place order")
	}

	return &Receipt{
		OrderID:       order.ID.String(),
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Total:         order.Total,
		ItemCount:     len(input.Items),
		Timestamp:     order.Timestamp,
		Status:        order.Status,
	}, nil
}

// totalOf sums price times quantity over the submitted items, rounded to
// two digits.
func totalOf(items []ItemInput) (float64, error) {
	total := decimal.Zero
	for _, item := range items {
		if item.ProductID <= 0 || item.Title == "" {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "Each cart item requires productId and title")
		}
		if item.Quantity <= 0 {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "Quantity must be greater than 0")
		}
		if item.Price < 0 {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "Price must not be negative")
		}
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Invalid total amount")
	}
	return total.Round(2).InexactFloat64(), nil
}
