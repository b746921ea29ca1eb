package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	checkoutsvc "github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubCatalogService struct{}

func (stubCatalogService) List(context.Context) ([]catalog.Product, error) {
	return []catalog.Product{}, nil
}

func (stubCatalogService) Get(context.Context, int) (*catalog.Product, error) {
	return &catalog.Product{}, nil
}

type stubCartService struct{}

func (stubCartService) AddItem(_ context.Context, userID string, _ cart.AddItemInput) (*cart.CartDTO, error) {
	return &cart.CartDTO{UserID: userID, Items: []cart.CartItemDTO{}}, nil
}

func (stubCartService) GetCart(_ context.Context, userID string) (*cart.CartDTO, error) {
	return &cart.CartDTO{UserID: userID, Items: []cart.CartItemDTO{}}, nil
}

func (stubCartService) RemoveItem(_ context.Context, userID string, _ int) (*cart.CartDTO, error) {
	return &cart.CartDTO{UserID: userID, Items: []cart.CartItemDTO{}}, nil
}

func (stubCartService) UpdateItemQuantity(_ context.Context, userID string, _, _ int) (*cart.CartDTO, error) {
	return &cart.CartDTO{UserID: userID, Items: []cart.CartItemDTO{}}, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) PlaceOrder(context.Context, string, checkoutsvc.PlaceOrderInput) (*checkoutsvc.Receipt, error) {
	return &checkoutsvc.Receipt{}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) List(context.Context, string) ([]orders.OrderDTO, error) {
	return nil, nil
}

func (stubOrdersService) Get(context.Context, string, string) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{}, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Shopper.UserID = "shopper-routes"

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	return NewRouter(Deps{
		Config:   cfg,
		Logger:   logg,
		Probes:   map[string]controllers.Pinger{"database": stubPinger{}, "redis": stubPinger{}},
		Catalog:  stubCatalogService{},
		Cart:     stubCartService{},
		Checkout: stubCheckoutService{},
		Orders:   stubOrdersService{},
	})
}

func TestRouterRoutes(t *testing.T) {
	router := testRouter(t)

	cases := []struct {
		method string
		target string
		body   string
		want   int
	}{
		{http.MethodGet, "/health/live", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodGet, "/products", "", http.StatusOK},
		{http.MethodGet, "/products/1", "", http.StatusOK},
		{http.MethodGet, "/cart", "", http.StatusOK},
		{http.MethodGet, "/checkout", "", http.StatusOK},
		{http.MethodDelete, "/cart/1", "", http.StatusOK},
		{http.MethodGet, "/missing", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRouterMetricsDisabledWithoutRegistry(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when registry absent, got %d", rec.Code)
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header to be set")
	}
}
