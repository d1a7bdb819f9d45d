package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dwikikusuma/marketplace/internal/wishlist/app"
	"github.com/dwikikusuma/marketplace/internal/wishlist/domain"
	"github.com/dwikikusuma/marketplace/pkg/postgres"
)

type WishlistRepo struct {
	db *sql.DB
}

func NewWishlistRepo(db *sql.DB) *WishlistRepo {
	return &WishlistRepo{db: db}
}

func (r *WishlistRepo) Add(ctx context.Context, userID, listingID int64) error {
	const q = `INSERT INTO wishlist (user_id, listing_id) VALUES ($1, $2)`

	_, err := postgres.GetRunner(ctx, r.db).ExecContext(ctx, q, userID, listingID)
	switch {
	case err == nil:
		return nil
	case postgres.IsUniqueViolation(err):
		return app.ErrAlreadySaved
	case postgres.IsForeignKeyViolation(err):
		return app.ErrListingNotFound
	}
	return fmt.Errorf("failed to add wishlist entry: %w", postgres.Classify(err))
}

func (r *WishlistRepo) List(ctx context.Context, userID int64) ([]domain.Entry, error) {
	const q = `
SELECT w.user_id, w.listing_id, l.name, l.price, l.photo, w.created_at
FROM wishlist w
JOIN listings l ON l.id = w.listing_id
WHERE w.user_id = $1
ORDER BY w.created_at DESC, w.listing_id`

	rows, err := postgres.GetRunner(ctx, r.db).QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", postgres.Classify(err))
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		var (
			e     domain.Entry
			photo sql.NullString
		)
		if err := rows.Scan(&e.UserID, &e.ListingID, &e.ListingName, &e.Price, &photo, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist entry: %w", postgres.Classify(err))
		}
		if photo.Valid {
			e.Photo = &photo.String
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", postgres.Classify(err))
	}
	return out, nil
}

func (r *WishlistRepo) Remove(ctx context.Context, userID, listingID int64) (bool, error) {
	const q = `DELETE FROM wishlist WHERE user_id = $1 AND listing_id = $2`

	res, err := postgres.GetRunner(ctx, r.db).ExecContext(ctx, q, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("failed to remove wishlist entry: %w", postgres.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove wishlist entry: %w", postgres.Classify(err))
	}
	return n > 0, nil
}
