package app

import (
	"context"
	"errors"
	"strings"

	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/report/domain"
)

var (
	ErrInvalidInput   = errors.New("exactly one of listing_id or comment_id and a reason are required")
	ErrTargetNotFound = errors.New("reported item not found")
	ErrForbidden      = errors.New("only admins can view reports")
)

type Service struct {
	repo ReportRepo
}

func NewService(repo ReportRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, reporter identity.Identity, listingID, commentID *int64, reason string) (domain.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" || (listingID == nil) == (commentID == nil) {
		return domain.Report{}, ErrInvalidInput
	}
	for _, id := range []*int64{listingID, commentID} {
		if id != nil && *id <= 0 {
			return domain.Report{}, ErrInvalidInput
		}
	}

	return s.repo.Create(ctx, domain.Report{
		ReporterID: reporter.ID,
		ListingID:  listingID,
		CommentID:  commentID,
		Reason:     reason,
	})
}

func (s *Service) List(ctx context.Context, caller identity.Identity) ([]domain.Report, error) {
	if !caller.IsAdmin {
		return nil, ErrForbidden
	}
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Report{}
	}
	return out, nil
}
