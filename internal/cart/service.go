package cart

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// Service exposes cart persistence operations. Every method takes the
// shopper id explicitly; nothing here assumes a process-wide current user.
type Service interface {
	AddItem(ctx context.Context, userID string, input AddItemInput) (*CartDTO, error)
	GetCart(ctx context.Context, userID string) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID string, productID int) (*CartDTO, error)
	UpdateItemQuantity(ctx context.Context, userID string, productID, quantity int) (*CartDTO, error)
}

// AddItemInput carries one product line submitted by the client.
type AddItemInput struct {
	ProductID int
	Title     string
	Price     float64
	Quantity  int
	Image     string
}

type service struct {
	repo   Repository
	locker Locker
}

// NewService builds a cart service backed by the provided repository. A nil
// locker disables per-shopper serialization (tests).
func NewService(repo Repository, locker Locker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if locker == nil {
		locker = noopLocker{}
	}
	return &service{repo: repo, locker: locker}, nil
}

func (s *service) AddItem(ctx context.Context, userID string, input AddItemInput) (*CartDTO, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductID == 0 || input.Title == "" || input.Price == 0 || input.Quantity == 0 || input.Image == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			"Missing required fields: productId, title, price, quantity, image")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Quantity must be greater than 0")
	}
	if input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Price must not be negative")
	}

	release, err := s.locker.Acquire(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "acquire cart lock")
	}
	defer release()

	cart, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Merge semantics: a duplicate productId bumps the stored quantity and
	// keeps the existing title/price/image.
	matched, err := s.repo.IncrementItemQuantity(ctx, cart.ID, input.ProductID, input.Quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "merge cart line")
	}
	if matched == 0 {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			Title:     input.Title,
			Price:     input.Price,
			Quantity:  input.Quantity,
			Image:     input.Image,
		}
		if err := s.repo.AddItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "append cart line")
		}
	}

	return s.reload(ctx, userID)
}

func (s *service) GetCart(ctx context.Context, userID string) (*CartDTO, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return emptyCartDTO(userID), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "fetch cart")
	}
	return newCartDTO(cart), nil
}

func (s *service) RemoveItem(ctx context.Context, userID string, productID int) (*CartDTO, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	release, err := s.locker.Acquire(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "acquire cart lock")
	}
	defer release()

	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "fetch cart")
	}

	// Pulling an absent line succeeds with the cart unchanged.
	if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "remove cart line")
	}

	return s.reload(ctx, userID)
}

func (s *service) UpdateItemQuantity(ctx context.Context, userID string, productID, quantity int) (*CartDTO, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Quantity must be greater than 0")
	}

	release, err := s.locker.Acquire(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "acquire cart lock")
	}
	defer release()

	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "fetch cart")
	}

	matched, err := s.repo.SetItemQuantity(ctx, cart.ID, productID, quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "update cart line")
	}
	if matched == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Item not found in cart")
	}

	return s.reload(ctx, userID)
}

// findOrCreate lazily creates the cart document on first add. A concurrent
// create losing the unique-index race falls back to the winner's row.
func (s *service) findOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.repo.FindByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "fetch cart")
	}

	fresh := &models.Cart{UserID: userID}
	if createErr := s.repo.Create(ctx, fresh); createErr != nil {
		if db.IsUniqueViolation(createErr, "idx_carts_user_id") {
			cart, err = s.repo.FindByUser(ctx, userID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "fetch cart after create race")
			}
			return cart, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, createErr, "create cart")
	}
	return fresh, nil
}

func (s *service) reload(ctx context.Context, userID string) (*CartDTO, error) {
	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "reload cart")
	}
	return newCartDTO(cart), nil
}
