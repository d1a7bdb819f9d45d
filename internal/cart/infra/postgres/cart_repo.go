package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dwikikusuma/marketplace/internal/cart/app"
	"github.com/dwikikusuma/marketplace/internal/cart/domain"
	"github.com/dwikikusuma/marketplace/pkg/postgres"
)

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

const selectCart = `SELECT id, user_id, created_at FROM carts WHERE user_id = $1`

func (r *CartRepo) Get(ctx context.Context, userID int64) (domain.Cart, error) {
	return r.scanCart(ctx, selectCart, userID)
}

func (r *CartRepo) Lock(ctx context.Context, userID int64) (domain.Cart, error) {
	return r.scanCart(ctx, selectCart+` FOR UPDATE`, userID)
}

func (r *CartRepo) scanCart(ctx context.Context, q string, userID int64) (domain.Cart, error) {
	var c domain.Cart
	err := postgres.GetRunner(ctx, r.db).QueryRowContext(ctx, q, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Cart{}, postgres.Classify(err)
	}
	return c, nil
}

func (r *CartRepo) Create(ctx context.Context, userID int64) (domain.Cart, error) {
	const q = `INSERT INTO carts (user_id) VALUES ($1) RETURNING id, user_id, created_at`

	var c domain.Cart
	err := postgres.GetRunner(ctx, r.db).QueryRowContext(ctx, q, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt)
	if postgres.IsUniqueViolation(err) {
		return domain.Cart{}, app.ErrCartExists
	}
	if err != nil {
		return domain.Cart{}, postgres.Classify(err)
	}
	return c, nil
}

// UpsertItem inserts the line or increments the existing one in a single
// statement. xmax is zero only for freshly inserted tuples.
func (r *CartRepo) UpsertItem(ctx context.Context, cartID, listingID int64, quantity int32) (domain.AddResult, error) {
	const q = `
INSERT INTO cart_items (cart_id, listing_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, listing_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
RETURNING id, quantity, (xmax = 0) AS inserted`

	var res domain.AddResult
	err := postgres.GetRunner(ctx, r.db).QueryRowContext(ctx, q, cartID, listingID, quantity).
		Scan(&res.ItemID, &res.Quantity, &res.Created)
	if postgres.IsForeignKeyViolation(err) {
		return domain.AddResult{}, app.ErrListingNotFound
	}
	if postgres.IsNumericOutOfRange(err) {
		return domain.AddResult{}, fmt.Errorf("%w: merged quantity too large", app.ErrInvalidQuantity)
	}
	if err != nil {
		return domain.AddResult{}, postgres.Classify(err)
	}
	return res, nil
}

// RemoveItem deletes the line only when it sits in a cart owned by userID.
func (r *CartRepo) RemoveItem(ctx context.Context, userID, itemID int64) (bool, error) {
	const q = `
DELETE FROM cart_items ci
USING carts c
WHERE ci.id = $1 AND ci.cart_id = c.id AND c.user_id = $2`

	res, err := postgres.GetRunner(ctx, r.db).ExecContext(ctx, q, itemID, userID)
	if err != nil {
		return false, postgres.Classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, postgres.Classify(err)
	}
	return n > 0, nil
}

const selectItems = `
SELECT ci.id, ci.cart_id, ci.listing_id, ci.quantity, l.name, l.price, l.photo
FROM cart_items ci
JOIN carts c ON c.id = ci.cart_id
JOIN listings l ON l.id = ci.listing_id
`

func (r *CartRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Item, error) {
	return r.listItems(ctx, selectItems+`WHERE c.user_id = $1 ORDER BY ci.id`, userID)
}

func (r *CartRepo) ListByCart(ctx context.Context, cartID int64) ([]domain.Item, error) {
	return r.listItems(ctx, selectItems+`WHERE ci.cart_id = $1 ORDER BY ci.id`, cartID)
}

func (r *CartRepo) listItems(ctx context.Context, q string, arg int64) ([]domain.Item, error) {
	rows, err := postgres.GetRunner(ctx, r.db).QueryContext(ctx, q, arg)
	if err != nil {
		return nil, postgres.Classify(err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		var (
			it    domain.Item
			photo sql.NullString
		)
		if err := rows.Scan(&it.ID, &it.CartID, &it.ListingID, &it.Quantity, &it.ListingName, &it.Price, &photo); err != nil {
			return nil, postgres.Classify(err)
		}
		if photo.Valid {
			it.Photo = &photo.String
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.Classify(err)
	}
	return items, nil
}

func (r *CartRepo) Clear(ctx context.Context, cartID int64) error {
	_, err := postgres.GetRunner(ctx, r.db).ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return postgres.Classify(err)
}
