package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const StatusProcessing = "processing"

// Order is the immutable receipt of a checkout.
type Order struct {
	ID            int64
	UserID        int64
	Address       string
	PaymentMethod string
	Status        string
	ItemsTotal    decimal.Decimal
	ShippingCost  decimal.Decimal
	Amount        decimal.Decimal
	Items         []Item
	CreatedAt     time.Time
}

// Item snapshots a listing's name and price at checkout time. ListingID is nil
// once the listing has been deleted.
type Item struct {
	ID          int64
	OrderID     int64
	ListingID   *int64
	ListingName string
	UnitPrice   decimal.Decimal
	Quantity    int32
}

func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt32(i.Quantity))
}
