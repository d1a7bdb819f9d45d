package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/marketplace/internal/comment/domain"
	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
)

var (
	ErrInvalidInput        = errors.New("comment body is required")
	ErrListingNotFound     = errors.New("listing not found")
	ErrNotFoundOrForbidden = errors.New("comment not found")
)

type Service struct {
	repo CommentRepo
}

func NewService(repo CommentRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, author identity.Identity, listingID int64, body string) (domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" || author.ID <= 0 {
		return domain.Comment{}, ErrInvalidInput
	}
	if listingID <= 0 {
		return domain.Comment{}, ErrListingNotFound
	}
	return s.repo.Create(ctx, domain.Comment{ListingID: listingID, UserID: author.ID, Body: body})
}

func (s *Service) List(ctx context.Context, listingID int64) ([]domain.Comment, error) {
	out, err := s.repo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Comment{}
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, actor identity.Identity, id int64, body string) (domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Comment{}, ErrInvalidInput
	}
	if id <= 0 {
		return domain.Comment{}, ErrNotFoundOrForbidden
	}
	return s.repo.Update(ctx, actor, id, body)
}

func (s *Service) Delete(ctx context.Context, actor identity.Identity, id int64) error {
	if id <= 0 {
		return ErrNotFoundOrForbidden
	}
	return s.repo.Delete(ctx, actor, id)
}
