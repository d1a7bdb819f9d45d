package app

import (
	"context"

	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/listing/domain"
)

type ListingRepo interface {
	Create(ctx context.Context, l domain.Listing) (domain.Listing, error)
	Get(ctx context.Context, id int64) (domain.Listing, error)
	List(ctx context.Context, f domain.Filter) ([]domain.Listing, error)
	// Update and Delete only touch rows owned by actor unless actor is an
	// admin. Anything else is ErrNotFoundOrForbidden.
	Update(ctx context.Context, actor identity.Identity, id int64, p domain.Patch) (domain.Listing, error)
	Delete(ctx context.Context, actor identity.Identity, id int64) error
}
