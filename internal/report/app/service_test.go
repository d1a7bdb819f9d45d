package app

import (
	"context"
	"errors"
	"testing"

	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/report/domain"
)

type memRepo struct {
	reports []domain.Report
}

func (m *memRepo) Create(_ context.Context, r domain.Report) (domain.Report, error) {
	r.ID = int64(len(m.reports) + 1)
	m.reports = append(m.reports, r)
	return r, nil
}
func (m *memRepo) List(context.Context) ([]domain.Report, error) { return m.reports, nil }

func ptr(n int64) *int64 { return &n }

func TestCreateRequiresExactlyOneTarget(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)
	me := identity.Identity{ID: 1}

	cases := map[string]struct {
		listing, comment *int64
		reason           string
	}{
		"no target":   {nil, nil, "spam"},
		"both":        {ptr(1), ptr(2), "spam"},
		"no reason":   {ptr(1), nil, "  "},
		"bad listing": {ptr(0), nil, "spam"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), me, tc.listing, tc.comment, tc.reason); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v", err)
			}
		})
	}
	if len(repo.reports) != 0 {
		t.Fatal("invalid report stored")
	}

	r, err := svc.Create(context.Background(), me, nil, ptr(5), " rude ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.Reason != "rude" || *r.CommentID != 5 || r.ReporterID != 1 {
		t.Fatalf("unexpected report: %+v", r)
	}
}

func TestListAdminOnly(t *testing.T) {
	svc := NewService(&memRepo{})
	if _, err := svc.List(context.Background(), identity.Identity{ID: 1}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v", err)
	}
	out, err := svc.List(context.Background(), identity.Identity{ID: 2, IsAdmin: true})
	if err != nil || out == nil {
		t.Fatalf("List = %v, %v", out, err)
	}
}
