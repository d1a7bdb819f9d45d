package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dwikikusuma/marketplace/internal/report/app"
	"github.com/dwikikusuma/marketplace/internal/report/domain"
	"github.com/dwikikusuma/marketplace/pkg/postgres"
)

type ReportRepo struct {
	db *sql.DB
}

func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

func scanReport(s interface{ Scan(...any) error }) (domain.Report, error) {
	var (
		r                domain.Report
		listing, comment sql.NullInt64
	)
	if err := s.Scan(&r.ID, &r.ReporterID, &listing, &comment, &r.Reason, &r.CreatedAt); err != nil {
		return domain.Report{}, err
	}
	if listing.Valid {
		r.ListingID = &listing.Int64
	}
	if comment.Valid {
		r.CommentID = &comment.Int64
	}
	return r, nil
}

func (r *ReportRepo) Create(ctx context.Context, rep domain.Report) (domain.Report, error) {
	const q = `
INSERT INTO reports (reporter_id, listing_id, comment_id, reason)
VALUES ($1, $2, $3, $4)
RETURNING id, reporter_id, listing_id, comment_id, reason, created_at`

	out, err := scanReport(postgres.GetRunner(ctx, r.db).QueryRowContext(ctx, q,
		rep.ReporterID, rep.ListingID, rep.CommentID, rep.Reason))
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return domain.Report{}, app.ErrTargetNotFound
		}
		return domain.Report{}, fmt.Errorf("failed to create report: %w", postgres.Classify(err))
	}
	return out, nil
}

func (r *ReportRepo) List(ctx context.Context) ([]domain.Report, error) {
	const q = `
SELECT id, reporter_id, listing_id, comment_id, reason, created_at
FROM reports
ORDER BY id DESC`

	rows, err := postgres.GetRunner(ctx, r.db).QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", postgres.Classify(err))
	}
	defer rows.Close()

	var out []domain.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", postgres.Classify(err))
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", postgres.Classify(err))
	}
	return out, nil
}
