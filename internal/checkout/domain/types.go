package domain

import "github.com/shopspring/decimal"

// Line is one cart item priced at the listing's current price.
type Line struct {
	ListingID   int64
	ListingName string
	Quantity    int32
	UnitPrice   decimal.Decimal
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity))
}

type Quote struct {
	Lines        []Line
	ItemsTotal   decimal.Decimal
	ShippingCost decimal.Decimal
	Amount       decimal.Decimal
}

// NewQuote prices lines and adds a flat shipping cost.
func NewQuote(lines []Line, shipping decimal.Decimal) Quote {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return Quote{
		Lines:        lines,
		ItemsTotal:   total,
		ShippingCost: shipping,
		Amount:       total.Add(shipping),
	}
}

type Receipt struct {
	OrderID       int64
	UserID        int64
	Address       string
	PaymentMethod string
	Quote         Quote
}
