package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
}

// Item is a cart line joined with the listing it points at.
type Item struct {
	ID          int64
	CartID      int64
	ListingID   int64
	Quantity    int32
	ListingName string
	Price       decimal.Decimal
	Photo       *string
}

// AddResult describes what AddItem did to the cart.
type AddResult struct {
	ItemID   int64
	Quantity int32
	Created  bool
}
