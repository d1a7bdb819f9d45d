package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dwikikusuma/marketplace/internal/comment/app"
	"github.com/dwikikusuma/marketplace/internal/comment/domain"
	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/pkg/postgres"
)

type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

const commentColumns = `id, listing_id, user_id, body, created_at, updated_at`

func (r *CommentRepo) Create(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	q := `INSERT INTO comments (listing_id, user_id, body) VALUES ($1, $2, $3) RETURNING ` + commentColumns

	var out domain.Comment
	err := postgres.GetRunner(ctx, r.db).QueryRowContext(ctx, q, c.ListingID, c.UserID, c.Body).
		Scan(&out.ID, &out.ListingID, &out.UserID, &out.Body, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return domain.Comment{}, app.ErrListingNotFound
		}
		return domain.Comment{}, fmt.Errorf("failed to create comment: %w", postgres.Classify(err))
	}
	return out, nil
}

func (r *CommentRepo) ListByListing(ctx context.Context, listingID int64) ([]domain.Comment, error) {
	q := `SELECT ` + commentColumns + ` FROM comments WHERE listing_id = $1 ORDER BY id`

	rows, err := postgres.GetRunner(ctx, r.db).QueryContext(ctx, q, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", postgres.Classify(err))
	}
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.ListingID, &c.UserID, &c.Body, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", postgres.Classify(err))
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", postgres.Classify(err))
	}
	return out, nil
}

func (r *CommentRepo) Update(ctx context.Context, actor identity.Identity, id int64, body string) (domain.Comment, error) {
	q := `
UPDATE comments SET body = $4, updated_at = now()
WHERE id = $1 AND (user_id = $2 OR $3)
RETURNING ` + commentColumns

	var c domain.Comment
	err := postgres.GetRunner(ctx, r.db).QueryRowContext(ctx, q, id, actor.ID, actor.IsAdmin, body).
		Scan(&c.ID, &c.ListingID, &c.UserID, &c.Body, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Comment{}, app.ErrNotFoundOrForbidden
	}
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to update comment: %w", postgres.Classify(err))
	}
	return c, nil
}

func (r *CommentRepo) Delete(ctx context.Context, actor identity.Identity, id int64) error {
	const q = `DELETE FROM comments WHERE id = $1 AND (user_id = $2 OR $3)`

	res, err := postgres.GetRunner(ctx, r.db).ExecContext(ctx, q, id, actor.ID, actor.IsAdmin)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", postgres.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", postgres.Classify(err))
	}
	if n == 0 {
		return app.ErrNotFoundOrForbidden
	}
	return nil
}
