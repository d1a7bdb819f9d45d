package app

import (
	"context"
	"errors"
	"testing"

	"github.com/dwikikusuma/marketplace/internal/comment/domain"
	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
)

type countingRepo struct{ calls int }

func (r *countingRepo) Create(_ context.Context, c domain.Comment) (domain.Comment, error) {
	r.calls++
	c.ID = 1
	return c, nil
}
func (r *countingRepo) ListByListing(context.Context, int64) ([]domain.Comment, error) {
	r.calls++
	return nil, nil
}
func (r *countingRepo) Update(context.Context, identity.Identity, int64, string) (domain.Comment, error) {
	r.calls++
	return domain.Comment{}, nil
}
func (r *countingRepo) Delete(context.Context, identity.Identity, int64) error {
	r.calls++
	return nil
}

func TestCreateValidation(t *testing.T) {
	repo := &countingRepo{}
	svc := NewService(repo)
	me := identity.Identity{ID: 4}

	if _, err := svc.Create(context.Background(), me, 1, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank body: %v", err)
	}
	if _, err := svc.Create(context.Background(), me, 0, "hi"); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("bad listing: %v", err)
	}
	if repo.calls != 0 {
		t.Fatal("repo reached with invalid input")
	}

	c, err := svc.Create(context.Background(), me, 1, " nice ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Body != "nice" || c.UserID != 4 {
		t.Fatalf("unexpected comment: %+v", c)
	}
}

func TestListNeverNil(t *testing.T) {
	out, err := NewService(&countingRepo{}).List(context.Background(), 1)
	if err != nil || out == nil {
		t.Fatalf("List = %v, %v", out, err)
	}
}

func TestUpdateRejectsBlankBody(t *testing.T) {
	repo := &countingRepo{}
	if _, err := NewService(repo).Update(context.Background(), identity.Identity{ID: 1}, 1, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
	if repo.calls != 0 {
		t.Fatal("repo reached")
	}
}
