package app

import (
	"context"
	"errors"

	"github.com/dwikikusuma/marketplace/internal/wishlist/domain"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrAlreadySaved    = errors.New("listing already in wishlist")
	ErrNotFound        = errors.New("listing not in wishlist")
)

type Service struct {
	repo WishlistRepo
}

func NewService(repo WishlistRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, userID, listingID int64) error {
	if listingID <= 0 {
		return ErrListingNotFound
	}
	return s.repo.Add(ctx, userID, listingID)
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Entry, error) {
	out, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Entry{}
	}
	return out, nil
}

func (s *Service) Remove(ctx context.Context, userID, listingID int64) error {
	if listingID <= 0 {
		return ErrNotFound
	}
	removed, err := s.repo.Remove(ctx, userID, listingID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}
