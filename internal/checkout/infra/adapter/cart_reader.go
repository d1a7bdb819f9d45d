package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/marketplace/internal/cart/app"
	"github.com/dwikikusuma/marketplace/internal/checkout/domain"
)

// CartStore exposes the cart service to checkout.
type CartStore struct {
	svc *cartapp.Service
}

func NewCartStore(svc *cartapp.Service) *CartStore {
	return &CartStore{svc: svc}
}

func (s *CartStore) LockLines(ctx context.Context, userID int64) (int64, []domain.Line, error) {
	cart, items, err := s.svc.LockForCheckout(ctx, userID)
	if err != nil {
		return 0, nil, err
	}

	lines := make([]domain.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.Line{
			ListingID:   it.ListingID,
			ListingName: it.ListingName,
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
		})
	}
	return cart.ID, lines, nil
}

func (s *CartStore) Clear(ctx context.Context, cartID int64) error {
	return s.svc.ClearCart(ctx, cartID)
}
