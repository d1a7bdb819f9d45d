package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/order/domain"
)

var (
	ErrInvalidInput        = errors.New("invalid order")
	ErrNotFoundOrForbidden = errors.New("order not found")
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

// Create persists an order after checking that its totals add up.
func (s *Service) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	if o.UserID <= 0 || strings.TrimSpace(o.Address) == "" || strings.TrimSpace(o.PaymentMethod) == "" {
		return domain.Order{}, ErrInvalidInput
	}
	if len(o.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: no items", ErrInvalidInput)
	}
	if o.ShippingCost.IsNegative() {
		return domain.Order{}, fmt.Errorf("%w: shipping cost cannot be negative, got %s", ErrInvalidInput, o.ShippingCost)
	}

	itemsTotal := decimal.Zero
	for i, item := range o.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidInput, i, item.Quantity)
		}
		if item.UnitPrice.IsNegative() {
			return domain.Order{}, fmt.Errorf("%w: item %d: unit price cannot be negative, got %s", ErrInvalidInput, i, item.UnitPrice)
		}
		itemsTotal = itemsTotal.Add(item.LineTotal())
	}

	if !itemsTotal.Equal(o.ItemsTotal) {
		return domain.Order{}, fmt.Errorf("%w: items total mismatch: %s != %s", ErrInvalidInput, o.ItemsTotal, itemsTotal)
	}
	if !itemsTotal.Add(o.ShippingCost).Equal(o.Amount) {
		return domain.Order{}, fmt.Errorf("%w: amount mismatch", ErrInvalidInput)
	}

	if o.Status == "" {
		o.Status = domain.StatusProcessing
	}
	return s.repo.Create(ctx, o)
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// Get returns an order visible to caller. Missing orders and orders of other
// users are reported identically.
func (s *Service) Get(ctx context.Context, caller identity.Identity, orderID int64) (domain.Order, error) {
	if orderID <= 0 {
		return domain.Order{}, ErrNotFoundOrForbidden
	}
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !identity.OwnerOrAdmin(caller, o.UserID) {
		return domain.Order{}, ErrNotFoundOrForbidden
	}
	return o, nil
}
