package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a listing saved by a user, with the listing's current details.
type Entry struct {
	UserID      int64
	ListingID   int64
	ListingName string
	Price       decimal.Decimal
	Photo       *string
	CreatedAt   time.Time
}
