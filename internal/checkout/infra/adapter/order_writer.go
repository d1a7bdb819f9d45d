package adapter

import (
	"context"

	"github.com/dwikikusuma/marketplace/internal/checkout/domain"
	orderapp "github.com/dwikikusuma/marketplace/internal/order/app"
	orderdomain "github.com/dwikikusuma/marketplace/internal/order/domain"
)

// OrderWriter records a priced quote through the order service.
type OrderWriter struct {
	svc *orderapp.Service
}

func NewOrderWriter(svc *orderapp.Service) *OrderWriter {
	return &OrderWriter{svc: svc}
}

func (w *OrderWriter) Place(ctx context.Context, userID int64, address, paymentMethod string, quote domain.Quote) (int64, error) {
	items := make([]orderdomain.Item, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		listingID := l.ListingID
		items = append(items, orderdomain.Item{
			ListingID:   &listingID,
			ListingName: l.ListingName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}

	o, err := w.svc.Create(ctx, orderdomain.Order{
		UserID:        userID,
		Address:       address,
		PaymentMethod: paymentMethod,
		Status:        orderdomain.StatusProcessing,
		ItemsTotal:    quote.ItemsTotal,
		ShippingCost:  quote.ShippingCost,
		Amount:        quote.Amount,
		Items:         items,
	})
	if err != nil {
		return 0, err
	}
	return o.ID, nil
}
