package app

import (
	"context"

	"github.com/dwikikusuma/marketplace/internal/identity/domain"
)

type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
}

// AdminLookup reports a user's current admin flag. ok is false when the user
// no longer exists.
type AdminLookup interface {
	IsAdmin(ctx context.Context, userID int64) (admin, ok bool, err error)
}
