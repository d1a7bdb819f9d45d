package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Listing struct {
	ID          int64
	SellerID    int64
	Name        string
	Description string
	Condition   string
	Price       decimal.Decimal
	Photo       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Patch holds the fields of an update. Nil fields are left unchanged.
type Patch struct {
	Name        *string
	Description *string
	Condition   *string
	Price       *decimal.Decimal
	Photo       *string
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Condition == nil && p.Price == nil && p.Photo == nil
}

type Filter struct {
	Query    string
	SellerID int64
	Limit    int
	After    int64
}
