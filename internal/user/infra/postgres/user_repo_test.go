package postgres_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/dwikikusuma/marketplace/internal/identity/infra/jwt"
	"github.com/dwikikusuma/marketplace/internal/user/app"
	hasher "github.com/dwikikusuma/marketplace/internal/user/infra/bcrypt"
	"github.com/dwikikusuma/marketplace/internal/user/infra/postgres"
	"github.com/dwikikusuma/marketplace/pkg/postgres/postgrestest"
)

func TestUser_RegisterLoginAndConflict(t *testing.T) {
	db := postgrestest.Open(t)
	tokens, err := jwt.NewTokens("0123456789abcdef0123", 0)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	svc := app.NewService(postgres.NewUserRepo(db), hasher.NewHasher(bcrypt.MinCost), tokens)
	ctx := context.Background()

	in := app.Registration{Username: "carol", Password: "pw", Email: "Carol@Example.com", Name: "Carol", Surname: "C"}
	u, err := svc.Register(ctx, in)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "carol@example.com" || u.PasswordHash == "pw" || u.Role() != "user" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.Register(ctx, in); !errors.Is(err, app.ErrConflict) {
		t.Fatalf("duplicate username: %v", err)
	}
	in.Username = "carol2"
	if _, err := svc.Register(ctx, in); !errors.Is(err, app.ErrConflict) {
		t.Fatalf("duplicate email: %v", err)
	}

	token, got, err := svc.Login(ctx, "carol", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || got.ID != u.ID {
		t.Fatalf("unexpected login result: %q %+v", token, got)
	}
	if _, _, err := svc.Login(ctx, "carol", "nope"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "pw"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", err)
	}
}
