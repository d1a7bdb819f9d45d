package domain

import "time"

// Report flags either a listing or a comment for moderation.
type Report struct {
	ID         int64
	ReporterID int64
	ListingID  *int64
	CommentID  *int64
	Reason     string
	CreatedAt  time.Time
}
