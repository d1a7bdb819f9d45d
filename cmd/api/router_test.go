package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	identityapp "github.com/dwikikusuma/marketplace/internal/identity/app"
	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	identityhttp "github.com/dwikikusuma/marketplace/internal/identity/httpapi"
	"github.com/dwikikusuma/marketplace/internal/identity/infra/jwt"
	"github.com/dwikikusuma/marketplace/pkg/httpx"
)

type fakeDB struct{ err error }

func (f fakeDB) PingContext(context.Context) error { return f.err }

type echoHandler struct{}

func (echoHandler) PublicRoutes(r chi.Router) {
	r.Get("/public", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, httpx.MessageBody{Message: "hi"})
	})
}

func (echoHandler) Routes(r chi.Router) {
	r.Get("/private", func(w http.ResponseWriter, r *http.Request) {
		id, _ := identity.FromContext(r.Context())
		httpx.WriteJSON(w, http.StatusOK, httpx.MessageBody{Message: id.Username})
	})
}

func testRouter(t *testing.T, db pinger) (http.Handler, *jwt.Tokens) {
	t.Helper()
	tokens, err := jwt.NewTokens("0123456789abcdef0123", 0)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	return newRouter(routerDeps{
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		db:          db,
		corsOrigins: []string{"*"},
		auth:        identityhttp.RequireIdentity(identityapp.NewGuard(tokens, nil)),
		handlers:    []routeSet{echoHandler{}},
	}), tokens
}

func get(h http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	h, _ := testRouter(t, fakeDB{})
	if rec := get(h, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}
	if rec := get(h, "/readyz", ""); rec.Code != http.StatusOK {
		t.Fatalf("readyz = %d", rec.Code)
	}

	down, _ := testRouter(t, fakeDB{err: errors.New("conn refused")})
	if rec := get(down, "/readyz", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz with db down = %d", rec.Code)
	}
}

func TestAuthBoundary(t *testing.T) {
	h, tokens := testRouter(t, fakeDB{})

	if rec := get(h, "/public", ""); rec.Code != http.StatusOK {
		t.Fatalf("public = %d", rec.Code)
	}
	if rec := get(h, "/private", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("private without token = %d", rec.Code)
	}
	if rec := get(h, "/private", "Bearer nope"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("private with bad token = %d", rec.Code)
	}

	token, err := tokens.Issue(identity.Identity{ID: 5, Username: "kim"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	rec := get(h, "/private", "Bearer "+token)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "kim") {
		t.Fatalf("private with token = %d %s", rec.Code, rec.Body)
	}
}
