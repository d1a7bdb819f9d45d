package domain

import "context"

// Identity is a verified caller.
type Identity struct {
	ID       int64
	Username string
	IsAdmin  bool
}

// OwnerOrAdmin reports whether id may mutate a resource owned by ownerID.
func OwnerOrAdmin(id Identity, ownerID int64) bool {
	return id.IsAdmin || (id.ID != 0 && id.ID == ownerID)
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok && id.ID != 0
}
