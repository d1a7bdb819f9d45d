package domain

import "time"

type Comment struct {
	ID        int64
	ListingID int64
	UserID    int64
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
