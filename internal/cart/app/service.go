package app

import (
	"context"
	"errors"

	"github.com/dwikikusuma/marketplace/internal/cart/domain"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrNotFound        = errors.New("cart item not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrCartExists      = errors.New("cart already exists")
)

type Service struct {
	repo CartRepo
}

func NewService(repo CartRepo) *Service {
	return &Service{
		repo: repo,
	}
}

// GetOrCreate returns the user's cart, creating it on first access. A create
// that loses the race against a concurrent one re-reads the winner's cart.
func (s *Service) GetOrCreate(ctx context.Context, userID int64) (domain.Cart, error) {
	if userID <= 0 {
		return domain.Cart{}, ErrInvalidInput
	}

	cart, err := s.repo.Get(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return domain.Cart{}, err
	}

	cart, err = s.repo.Create(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if errors.Is(err, ErrCartExists) {
		return s.repo.Get(ctx, userID)
	}
	return domain.Cart{}, err
}

// AddItem adds quantity of a listing to the user's cart. A listing already in
// the cart has its quantity increased instead of getting a second row.
func (s *Service) AddItem(ctx context.Context, userID, listingID int64, quantity int32) (domain.AddResult, error) {
	if quantity <= 0 {
		return domain.AddResult{}, ErrInvalidQuantity
	}
	if listingID <= 0 {
		return domain.AddResult{}, ErrInvalidInput
	}

	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.AddResult{}, err
	}

	return s.repo.UpsertItem(ctx, cart.ID, listingID, quantity)
}

// RemoveItem deletes a cart line. Lines in other users' carts are reported as
// ErrNotFound.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID int64) error {
	if itemID <= 0 {
		return ErrNotFound
	}

	removed, err := s.repo.RemoveItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListItems(ctx context.Context, userID int64) ([]domain.Item, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

// LockForCheckout locks the user's cart and returns its lines. It must run
// inside a transaction. A missing cart yields no lines.
func (s *Service) LockForCheckout(ctx context.Context, userID int64) (domain.Cart, []domain.Item, error) {
	cart, err := s.repo.Lock(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return domain.Cart{}, nil, nil
	}
	if err != nil {
		return domain.Cart{}, nil, err
	}

	items, err := s.repo.ListByCart(ctx, cart.ID)
	if err != nil {
		return domain.Cart{}, nil, err
	}
	return cart, items, nil
}

func (s *Service) ClearCart(ctx context.Context, cartID int64) error {
	return s.repo.Clear(ctx, cartID)
}
