package app

import (
	"context"

	"github.com/dwikikusuma/marketplace/internal/order/domain"
)

type OrderRepo interface {
	// Create inserts the order and its items atomically.
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	// Get returns ErrNotFoundOrForbidden when the order does not exist.
	Get(ctx context.Context, orderID int64) (domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}
