package app

import (
	"context"

	"github.com/dwikikusuma/marketplace/internal/comment/domain"
	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
)

type CommentRepo interface {
	// Create returns ErrListingNotFound when the listing does not exist.
	Create(ctx context.Context, c domain.Comment) (domain.Comment, error)
	ListByListing(ctx context.Context, listingID int64) ([]domain.Comment, error)
	Update(ctx context.Context, actor identity.Identity, id int64, body string) (domain.Comment, error)
	Delete(ctx context.Context, actor identity.Identity, id int64) error
}
