package jwt

import (
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/dwikikusuma/marketplace/internal/identity/domain"
)

const secret = "0123456789abcdef0123"

func TestIssueVerifyRoundTrip(t *testing.T) {
	tok, err := NewTokens(secret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}

	raw, err := tok.Issue(domain.Identity{ID: 42, Username: "erin", IsAdmin: true})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := tok.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.ID != 42 || got.Username != "erin" || !got.IsAdmin {
		t.Fatalf("got %+v", got)
	}
}

func TestVerifyRejects(t *testing.T) {
	tok, _ := NewTokens(secret, time.Hour)
	raw, _ := tok.Issue(domain.Identity{ID: 1, Username: "a"})

	t.Run("tampered", func(t *testing.T) {
		parts := strings.Split(raw, ".")
		parts[2] = strings.Repeat("A", len(parts[2]))
		if _, err := tok.Verify(strings.Join(parts, ".")); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("other secret", func(t *testing.T) {
		other, _ := NewTokens("another-secret-value!", time.Hour)
		if _, err := other.Verify(raw); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("expired", func(t *testing.T) {
		tok.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { tok.now = time.Now }()
		if _, err := tok.Verify(raw); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("alg none", func(t *testing.T) {
		unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, jwtlib.MapClaims{"sub": "1", "iss": issuer})
		s, _ := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
		if _, err := tok.Verify(s); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := tok.Verify("not-a-token"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestNewTokensRejectsShortSecret(t *testing.T) {
	if _, err := NewTokens("short", time.Hour); err == nil {
		t.Fatal("expected error")
	}
}
