package app

import (
	"context"

	"github.com/dwikikusuma/marketplace/internal/wishlist/domain"
)

type WishlistRepo interface {
	// Add returns ErrAlreadySaved for a duplicate and ErrListingNotFound for
	// an unknown listing.
	Add(ctx context.Context, userID, listingID int64) error
	List(ctx context.Context, userID int64) ([]domain.Entry, error)
	Remove(ctx context.Context, userID, listingID int64) (bool, error)
}
