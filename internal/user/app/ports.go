package app

import (
	"context"

	"github.com/dwikikusuma/marketplace/internal/user/domain"
)

type UserRepo interface {
	// Create returns ErrConflict when the username or email is taken.
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	Update(ctx context.Context, id int64, p domain.ProfilePatch) (domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}
