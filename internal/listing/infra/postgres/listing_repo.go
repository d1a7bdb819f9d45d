package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/listing/app"
	"github.com/dwikikusuma/marketplace/internal/listing/domain"
	"github.com/dwikikusuma/marketplace/pkg/postgres"
)

type ListingRepo struct {
	db *sql.DB
}

func NewListingRepo(db *sql.DB) *ListingRepo {
	return &ListingRepo{db: db}
}

const listingColumns = `id, seller_id, name, description, condition, price, photo, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(s scanner) (domain.Listing, error) {
	var l domain.Listing
	var photo sql.NullString
	err := s.Scan(&l.ID, &l.SellerID, &l.Name, &l.Description, &l.Condition, &l.Price, &photo, &l.CreatedAt, &l.UpdatedAt)
	if photo.Valid {
		l.Photo = &photo.String
	}
	return l, err
}

func (r *ListingRepo) Create(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	q := `
INSERT INTO listings (seller_id, name, description, condition, price, photo)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + listingColumns

	row := postgres.GetRunner(ctx, r.db).QueryRowContext(ctx, q,
		l.SellerID, l.Name, l.Description, l.Condition, l.Price, l.Photo)
	created, err := scanListing(row)
	if err != nil {
		if postgres.IsCheckViolation(err) {
			return domain.Listing{}, app.ErrInvalidInput
		}
		return domain.Listing{}, fmt.Errorf("failed to create listing: %w", postgres.Classify(err))
	}
	return created, nil
}

func (r *ListingRepo) Get(ctx context.Context, id int64) (domain.Listing, error) {
	q := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	l, err := scanListing(postgres.GetRunner(ctx, r.db).QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Listing{}, fmt.Errorf("failed to get listing: %w", postgres.Classify(err))
	}
	return l, nil
}

func (r *ListingRepo) List(ctx context.Context, f domain.Filter) ([]domain.Listing, error) {
	q := `
SELECT ` + listingColumns + `
FROM listings
WHERE id > $1
  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
  AND ($3::bigint = 0 OR seller_id = $3)
ORDER BY id
LIMIT $4`

	rows, err := postgres.GetRunner(ctx, r.db).QueryContext(ctx, q, f.After, f.Query, f.SellerID, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", postgres.Classify(err))
	}
	defer rows.Close()

	out := make([]domain.Listing, 0, f.Limit)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", postgres.Classify(err))
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", postgres.Classify(err))
	}
	return out, nil
}

func (r *ListingRepo) Update(ctx context.Context, actor identity.Identity, id int64, p domain.Patch) (domain.Listing, error) {
	q := `
UPDATE listings SET
    name        = COALESCE($4, name),
    description = COALESCE($5, description),
    condition   = COALESCE($6, condition),
    price       = COALESCE($7::numeric, price),
    photo       = COALESCE($8, photo),
    updated_at  = now()
WHERE id = $1 AND (seller_id = $2 OR $3)
RETURNING ` + listingColumns

	row := postgres.GetRunner(ctx, r.db).QueryRowContext(ctx, q,
		id, actor.ID, actor.IsAdmin, p.Name, p.Description, p.Condition, p.Price, p.Photo)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, app.ErrNotFoundOrForbidden
	}
	if err != nil {
		if postgres.IsCheckViolation(err) {
			return domain.Listing{}, app.ErrInvalidInput
		}
		return domain.Listing{}, fmt.Errorf("failed to update listing: %w", postgres.Classify(err))
	}
	return l, nil
}

func (r *ListingRepo) Delete(ctx context.Context, actor identity.Identity, id int64) error {
	const q = `DELETE FROM listings WHERE id = $1 AND (seller_id = $2 OR $3)`

	res, err := postgres.GetRunner(ctx, r.db).ExecContext(ctx, q, id, actor.ID, actor.IsAdmin)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", postgres.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", postgres.Classify(err))
	}
	if n == 0 {
		return app.ErrNotFoundOrForbidden
	}
	return nil
}
