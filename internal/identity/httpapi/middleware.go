package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/marketplace/internal/identity/app"
	"github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/pkg/httpx"
	"github.com/dwikikusuma/marketplace/pkg/postgres"
)

// RequireIdentity rejects requests without a valid bearer credential and
// stores the resolved identity in the request context.
func RequireIdentity(g *app.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := g.Resolve(r.Context(), bearer(r))
			if err != nil {
				httpx.WriteError(w, r, mapErr(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(domain.WithIdentity(r.Context(), id)))
		})
	}
}

func bearer(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		// A header that is present but not a bearer token is malformed.
		return h
	}
	return strings.TrimSpace(token)
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrUnauthenticated) {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	if errors.Is(err, app.ErrInvalidCredential) {
		return status.Error(codes.Unauthenticated, "invalid or expired token")
	}
	if errors.Is(err, postgres.ErrUnavailable) {
		return status.Error(codes.Unavailable, "storage unavailable")
	}
	return status.Error(codes.Internal, err.Error())
}
