package app

import (
	"context"

	"github.com/dwikikusuma/marketplace/internal/checkout/domain"
)

type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type CartStore interface {
	// LockLines locks the user's cart for the rest of the transaction and
	// returns its lines at current prices. cartID is 0 when no cart exists.
	LockLines(ctx context.Context, userID int64) (cartID int64, lines []domain.Line, err error)
	Clear(ctx context.Context, cartID int64) error
}

type OrderWriter interface {
	Place(ctx context.Context, userID int64, address, paymentMethod string, quote domain.Quote) (orderID int64, err error)
}

// Notifier is told about placed orders after commit.
type Notifier interface {
	OrderPlaced(ctx context.Context, receipt domain.Receipt) error
}
