package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

const testUserID = "shopper-test"

type stubCartService struct {
	dto *cart.CartDTO
	err error

	addInput    *cart.AddItemInput
	removedID   int
	updatedID   int
	updatedQty  int
	gotUserID   string
	getCartHits int
}

func (s *stubCartService) AddItem(_ context.Context, userID string, input cart.AddItemInput) (*cart.CartDTO, error) {
	s.gotUserID = userID
	s.addInput = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.dto, nil
}

func (s *stubCartService) GetCart(_ context.Context, userID string) (*cart.CartDTO, error) {
	s.gotUserID = userID
	s.getCartHits++
	if s.err != nil {
		return nil, s.err
	}
	return s.dto, nil
}

func (s *stubCartService) RemoveItem(_ context.Context, userID string, productID int) (*cart.CartDTO, error) {
	s.gotUserID = userID
	s.removedID = productID
	if s.err != nil {
		return nil, s.err
	}
	return s.dto, nil
}

func (s *stubCartService) UpdateItemQuantity(_ context.Context, userID string, productID, quantity int) (*cart.CartDTO, error) {
	s.gotUserID = userID
	s.updatedID = productID
	s.updatedQty = quantity
	if s.err != nil {
		return nil, s.err
	}
	return s.dto, nil
}

func filledCartDTO() *cart.CartDTO {
	now := time.Now().UTC()
	return &cart.CartDTO{
		UserID: testUserID,
		Items: []cart.CartItemDTO{
			{ProductID: 1, Title: "Backpack", Price: 109.95, Quantity: 1, Image: "https://img/1.jpg"},
		},
		Total:     109.95,
		ItemCount: 1,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
}

func TestAddToCart(t *testing.T) {
	logg := testLogger()

	post := func(body string, stub *stubCartService) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		AddToCart(stub, testUserID, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("created", func(t *testing.T) {
		stub := &stubCartService{dto: filledCartDTO()}
		body := `{"productId":1,"title":"Backpack","price":109.95,"quantity":1,"image":"https://img/1.jpg"}`
		rec := post(body, stub)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if stub.gotUserID != testUserID {
			t.Fatalf("expected configured user id, got %q", stub.gotUserID)
		}
		if stub.addInput == nil || stub.addInput.ProductID != 1 {
			t.Fatalf("expected add input with productId 1")
		}
		envelope := decodeEnvelope(t, rec)
		if envelope.Message != "Item added to cart successfully" {
			t.Fatalf("unexpected message %q", envelope.Message)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := post(`{"productId":1}`, &stubCartService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := post(`{"productId":`, &stubCartService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		body := `{"productId":1,"title":"Backpack","price":109.95,"quantity":0,"image":"https://img/1.jpg"}`
		rec := post(body, &stubCartService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetCartEndpoint(t *testing.T) {
	logg := testLogger()

	t.Run("fetched", func(t *testing.T) {
		stub := &stubCartService{dto: filledCartDTO()}
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		rec := httptest.NewRecorder()
		GetCart(stub, testUserID, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		envelope := decodeEnvelope(t, rec)
		if envelope.Message != "Cart fetched successfully" {
			t.Fatalf("unexpected message %q", envelope.Message)
		}
	})

	t.Run("synthetic empty", func(t *testing.T) {
		stub := &stubCartService{dto: &cart.CartDTO{UserID: testUserID, Items: []cart.CartItemDTO{}}}
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		rec := httptest.NewRecorder()
		GetCart(stub, testUserID, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for missing cart, got %d", rec.Code)
		}
		envelope := decodeEnvelope(t, rec)
		if envelope.Message != "Cart is empty" {
			t.Fatalf("unexpected message %q", envelope.Message)
		}
	})
}

func TestRemoveFromCart(t *testing.T) {
	logg := testLogger()

	request := func(productID string, stub *stubCartService) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/cart/"+productID, nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("productId", productID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		RemoveFromCart(stub, testUserID, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("removed", func(t *testing.T) {
		stub := &stubCartService{dto: filledCartDTO()}
		rec := request("1", stub)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.removedID != 1 {
			t.Fatalf("expected productId 1, got %d", stub.removedID)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := request("abc", &stubCartService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		envelope := decodeEnvelope(t, rec)
		if envelope.Message != "Invalid product ID" {
			t.Fatalf("unexpected message %q", envelope.Message)
		}
	})

	t.Run("missing cart", func(t *testing.T) {
		stub := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Cart not found")}
		rec := request("1", stub)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestUpdateCartItem(t *testing.T) {
	logg := testLogger()

	patch := func(productID, body string, stub *stubCartService) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/cart/"+productID, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("productId", productID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		UpdateCartItem(stub, testUserID, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("updated", func(t *testing.T) {
		stub := &stubCartService{dto: filledCartDTO()}
		rec := patch("1", `{"quantity":4}`, stub)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.updatedID != 1 || stub.updatedQty != 4 {
			t.Fatalf("expected update(1, 4), got update(%d, %d)", stub.updatedID, stub.updatedQty)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		rec := patch("1", `{"quantity":0}`, &stubCartService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing line", func(t *testing.T) {
		stub := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Item not found in cart")}
		rec := patch("42", `{"quantity":2}`, stub)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		envelope := decodeEnvelope(t, rec)
		if envelope.Message != "Item not found in cart" {
			t.Fatalf("unexpected message %q", envelope.Message)
		}
	})
}
