package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/marketplace/internal/checkout/domain"
	"github.com/dwikikusuma/marketplace/pkg/logger"
)

var (
	ErrInvalidInput = errors.New("address and payment_method are required")
	ErrEmptyCart    = errors.New("cart is empty")
	// ErrCheckoutPartialFailure means the cart could not be cleared after the
	// order insert; the whole checkout was rolled back.
	ErrCheckoutPartialFailure = errors.New("checkout could not be completed")
)

type Service struct {
	tx       TxRunner
	cart     CartStore
	orders   OrderWriter
	notifier Notifier
	shipping decimal.Decimal
}

func NewService(tx TxRunner, cart CartStore, orders OrderWriter, notifier Notifier, shipping decimal.Decimal) *Service {
	return &Service{
		tx:       tx,
		cart:     cart,
		orders:   orders,
		notifier: notifier,
		shipping: shipping,
	}
}

// Checkout turns the user's cart into an order. Reading the cart, inserting the
// order and clearing the cart happen in one transaction under a lock on the
// cart row, so a concurrent second checkout sees an empty cart.
func (s *Service) Checkout(ctx context.Context, userID int64, address, paymentMethod string) (domain.Receipt, error) {
	address = strings.TrimSpace(address)
	paymentMethod = strings.TrimSpace(paymentMethod)
	if address == "" || paymentMethod == "" {
		return domain.Receipt{}, ErrInvalidInput
	}

	var receipt domain.Receipt
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		cartID, lines, err := s.cart.LockLines(ctx, userID)
		if err != nil {
			return err
		}
		if cartID == 0 || len(lines) == 0 {
			return ErrEmptyCart
		}

		quote := domain.NewQuote(lines, s.shipping)

		orderID, err := s.orders.Place(ctx, userID, address, paymentMethod, quote)
		if err != nil {
			return err
		}

		if err := s.cart.Clear(ctx, cartID); err != nil {
			return fmt.Errorf("%w: clear cart %d: %v", ErrCheckoutPartialFailure, cartID, err)
		}

		receipt = domain.Receipt{
			OrderID:       orderID,
			UserID:        userID,
			Address:       address,
			PaymentMethod: paymentMethod,
			Quote:         quote,
		}
		return nil
	})
	if err != nil {
		return domain.Receipt{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.OrderPlaced(ctx, receipt); err != nil {
			logger.FromContext(ctx).Warn("order confirmation not sent",
				slog.Int64("order_id", receipt.OrderID), slog.Any("err", err))
		}
	}

	return receipt, nil
}
