package catalog

import (
	"context"
	"fmt"
	"testing"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type stubFetcher struct {
	products []Product
	product  *Product
	err      error

	fetchByIDCalls int
}

func (s *stubFetcher) FetchAll(ctx context.Context) ([]Product, error) {
	return s.products, s.err
}

func (s *stubFetcher) FetchByID(ctx context.Context, id int) (*Product, error) {
	s.fetchByIDCalls++
	return s.product, s.err
}

func TestListCapsAtTen(t *testing.T) {
	t.Parallel()

	products := make([]Product, 25)
	for i := range products {
		products[i] = Product{ID: i + 1, Title: fmt.Sprintf("p%d", i+1)}
	}
	svc, err := NewService(&stubFetcher{products: products})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 products, got %d", len(got))
	}
	if got[9].ID != 10 {
		t.Fatalf("expected first ten entries in order, got tail %+v", got[9])
	}
}

func TestListShortUpstream(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&stubFetcher{products: []Product{{ID: 1}, {ID: 2}}})

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
}

func TestListPropagatesUpstreamError(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&stubFetcher{err: pkgerrors.New(pkgerrors.CodeUpstream, "boom")})

	if _, err := svc.List(context.Background()); pkgerrors.As(err) == nil {
		t.Fatalf("expected typed upstream error, got %v", err)
	}
}

func TestGetRejectsMissingIDBeforeAnyCall(t *testing.T) {
	t.Parallel()

	stub := &stubFetcher{product: &Product{ID: 1}}
	svc, _ := NewService(stub)

	_, err := svc.Get(context.Background(), 0)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if stub.fetchByIDCalls != 0 {
		t.Fatal("expected no upstream call for invalid id")
	}
}

func TestGetRelaysBodyVerbatim(t *testing.T) {
	t.Parallel()

	// Upstream returned an empty object for an unknown id; the gateway
	// passes it through without an existence check.
	stub := &stubFetcher{product: &Product{}}
	svc, _ := NewService(stub)

	got, err := svc.Get(context.Background(), 9999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 0 {
		t.Fatalf("expected verbatim empty product, got %+v", got)
	}
}
