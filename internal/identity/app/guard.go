package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/marketplace/internal/identity/domain"
)

var (
	ErrUnauthenticated   = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid credential")
)

// Guard turns a bearer credential into a verified Identity. With an
// AdminLookup the admin flag is read from the store on every request, so a
// demotion applies before the token expires.
type Guard struct {
	verifier TokenVerifier
	admins   AdminLookup
}

// NewGuard builds a Guard. admins may be nil, in which case the token's admin
// claim is trusted.
func NewGuard(verifier TokenVerifier, admins AdminLookup) *Guard {
	return &Guard{verifier: verifier, admins: admins}
}

func (g *Guard) Resolve(ctx context.Context, credential string) (domain.Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return domain.Identity{}, ErrUnauthenticated
	}
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, err
	}

	id, err := g.verifier.Verify(credential)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	if id.ID <= 0 {
		return domain.Identity{}, ErrInvalidCredential
	}

	if g.admins != nil {
		admin, ok, err := g.admins.IsAdmin(ctx, id.ID)
		if err != nil {
			return domain.Identity{}, fmt.Errorf("admin lookup for user %d: %w", id.ID, err)
		}
		if !ok {
			return domain.Identity{}, fmt.Errorf("%w: user %d no longer exists", ErrInvalidCredential, id.ID)
		}
		id.IsAdmin = admin
	}
	return id, nil
}
