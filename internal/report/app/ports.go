package app

import (
	"context"

	"github.com/dwikikusuma/marketplace/internal/report/domain"
)

type ReportRepo interface {
	// Create returns ErrTargetNotFound when the reported listing or comment
	// does not exist.
	Create(ctx context.Context, r domain.Report) (domain.Report, error)
	List(ctx context.Context) ([]domain.Report, error)
}
