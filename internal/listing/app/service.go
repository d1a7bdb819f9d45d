package app

import (
	"context"
	"errors"
	"strconv"
	"strings"

	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/listing/domain"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("listing not found")
	ErrNotFoundOrForbidden = errors.New("listing not found")
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Service struct {
	repo ListingRepo
}

func NewService(repo ListingRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) Create(ctx context.Context, seller identity.Identity, l domain.Listing) (domain.Listing, error) {
	l.Name = strings.TrimSpace(l.Name)
	if seller.ID <= 0 || l.Name == "" || l.Price.IsNegative() {
		return domain.Listing{}, ErrInvalidInput
	}
	l.SellerID = seller.ID
	return s.repo.Create(ctx, l)
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Listing, error) {
	if id <= 0 {
		return domain.Listing{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// List returns one page of listings ordered by id and the cursor for the next
// page, which is empty on the last page.
func (s *Service) List(ctx context.Context, query string, sellerID int64, limit int, cursor string) ([]domain.Listing, string, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	f := domain.Filter{Query: strings.TrimSpace(query), SellerID: sellerID, Limit: limit}
	if c := strings.TrimSpace(cursor); c != "" {
		after, err := strconv.ParseInt(c, 10, 64)
		if err != nil || after < 0 {
			return nil, "", ErrInvalidInput
		}
		f.After = after
	}

	out, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, "", err
	}
	if out == nil {
		out = []domain.Listing{}
	}

	var next string
	if len(out) == limit {
		next = strconv.FormatInt(out[len(out)-1].ID, 10)
	}
	return out, next, nil
}

func (s *Service) Update(ctx context.Context, actor identity.Identity, id int64, p domain.Patch) (domain.Listing, error) {
	if p.Empty() {
		return domain.Listing{}, ErrInvalidInput
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return domain.Listing{}, ErrInvalidInput
		}
		p.Name = &name
	}
	if p.Price != nil && p.Price.IsNegative() {
		return domain.Listing{}, ErrInvalidInput
	}
	if id <= 0 {
		return domain.Listing{}, ErrNotFoundOrForbidden
	}
	return s.repo.Update(ctx, actor, id, p)
}

func (s *Service) Delete(ctx context.Context, actor identity.Identity, id int64) error {
	if id <= 0 {
		return ErrNotFoundOrForbidden
	}
	return s.repo.Delete(ctx, actor, id)
}
