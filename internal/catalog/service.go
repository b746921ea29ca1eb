package catalog

import (
	"context"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// listingCap bounds every catalog listing to the first entries of the
// upstream response. Fixed by contract, not configurable.
const listingCap = 10

// Service exposes the read-only catalog gateway.
type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (*Product, error)
}

type fetcher interface {
	FetchAll(ctx context.Context) ([]Product, error)
	FetchByID(ctx context.Context, id int) (*Product, error)
}

type service struct {
	client fetcher
}

// NewService builds the catalog gateway over the provided client.
func NewService(client fetcher) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog client required")
	}
	return &service{client: client}, nil
}

// List relays the upstream listing truncated to the first ten products.
func (s *service) List(ctx context.Context) ([]Product, error) {
	products, err := s.client.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) > listingCap {
		products = products[:listingCap]
	}
	return products, nil
}

// Get relays a single product lookup. The id is validated before any
// network call; the upstream body is passed through without an existence
// check.
func (s *service) Get(ctx context.Context, id int) (*Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.client.FetchByID(ctx, id)
}
