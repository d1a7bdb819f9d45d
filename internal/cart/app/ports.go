package app

import (
	"context"

	"github.com/dwikikusuma/marketplace/internal/cart/domain"
)

type CartRepo interface {
	// Get returns ErrNotFound when the user has no cart.
	Get(ctx context.Context, userID int64) (domain.Cart, error)
	// Create returns ErrCartExists when the user already has a cart.
	Create(ctx context.Context, userID int64) (domain.Cart, error)
	// Lock reads the user's cart row with a row lock held until the
	// surrounding transaction ends.
	Lock(ctx context.Context, userID int64) (domain.Cart, error)

	UpsertItem(ctx context.Context, cartID, listingID int64, quantity int32) (domain.AddResult, error)
	RemoveItem(ctx context.Context, userID, itemID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Item, error)
	ListByCart(ctx context.Context, cartID int64) ([]domain.Item, error)
	Clear(ctx context.Context, cartID int64) error
}
