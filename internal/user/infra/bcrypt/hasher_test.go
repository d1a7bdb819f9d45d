package bcrypt

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "s3cret" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash %q", hash)
	}
	if err := h.Compare(hash, "s3cret"); err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
	if err := h.Compare("not-a-hash", "s3cret"); err == nil {
		t.Fatal("garbage hash accepted")
	}
}
