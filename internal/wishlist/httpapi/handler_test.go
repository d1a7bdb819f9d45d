package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/wishlist/app"
	"github.com/dwikikusuma/marketplace/internal/wishlist/domain"
)

type memRepo struct {
	saved map[int64]bool
}

func (m *memRepo) Add(_ context.Context, _, listingID int64) error {
	if listingID > 10 {
		return app.ErrListingNotFound
	}
	if m.saved[listingID] {
		return app.ErrAlreadySaved
	}
	m.saved[listingID] = true
	return nil
}
func (m *memRepo) List(context.Context, int64) ([]domain.Entry, error) {
	var out []domain.Entry
	for id := range m.saved {
		out = append(out, domain.Entry{ListingID: id, ListingName: "x"})
	}
	return out, nil
}
func (m *memRepo) Remove(_ context.Context, _, listingID int64) (bool, error) {
	ok := m.saved[listingID]
	delete(m.saved, listingID)
	return ok, nil
}

func TestWishlistStatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(identity.WithIdentity(req.Context(), identity.Identity{ID: 1})))
		})
	})
	NewHandler(app.NewService(&memRepo{saved: map[int64]bool{}})).Routes(r)

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodPost, "/wishlist", `{"listing_id": 3}`, http.StatusCreated},
		{http.MethodPost, "/wishlist", `{"listing_id": 3}`, http.StatusConflict},
		{http.MethodPost, "/wishlist", `{"listing_id": 99}`, http.StatusNotFound},
		{http.MethodPost, "/wishlist", `{"listing_id": "abc"}`, http.StatusBadRequest},
		{http.MethodPost, "/wishlist", `{}`, http.StatusBadRequest},
		{http.MethodGet, "/wishlist", "", http.StatusOK},
		{http.MethodDelete, "/wishlist/3", "", http.StatusOK},
		{http.MethodDelete, "/wishlist/3", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
		if rec.Code != tc.want {
			t.Fatalf("%s %s %s: status = %d, want %d", tc.method, tc.path, tc.body, rec.Code, tc.want)
		}
	}
}
