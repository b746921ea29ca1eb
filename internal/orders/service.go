package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// Service exposes read access to the shopper's order history. Orders are
// written only by checkout; this service never mutates them.
type Service interface {
	List(ctx context.Context, userID string) ([]OrderDTO, error)
	Get(ctx context.Context, userID, orderID string) (*OrderDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds an order query service backed by the repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID string) ([]OrderDTO, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "list orders")
	}
	return newOrderDTOs(records), nil
}

func (s *service) Get(ctx context.Context, userID, orderID string) (*OrderDTO, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid order id")
	}

	record, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "fetch order")
	}
	return newOrderDTO(record), nil
}
