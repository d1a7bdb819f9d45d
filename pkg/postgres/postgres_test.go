package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lib/pq"
)

func TestConfigDSN(t *testing.T) {
	t.Run("url wins", func(t *testing.T) {
		c := Config{URL: "postgres://u@h/db", Host: "ignored"}
		if c.DSN() != "postgres://u@h/db" {
			t.Fatalf("got %s", c.DSN())
		}
	})

	t.Run("built from parts", func(t *testing.T) {
		c := Config{Host: "db", Port: 5433, User: "app", Pass: "p@ss", DB: "shop"}
		got := c.DSN()
		if !strings.HasPrefix(got, "postgres://app:p%40ss@db:5433/shop") || !strings.Contains(got, "sslmode=disable") {
			t.Fatalf("got %s", got)
		}
	})
}

func TestViolationHelpers(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
	fk := &pq.Error{Code: "23503"}

	if !IsUniqueViolation(unique) || IsUniqueViolation(fk) {
		t.Fatal("unique violation misclassified")
	}
	if !IsForeignKeyViolation(fk) || IsForeignKeyViolation(unique) {
		t.Fatal("foreign key violation misclassified")
	}
	if !IsNumericOutOfRange(&pq.Error{Code: "22003"}) || IsNumericOutOfRange(fk) {
		t.Fatal("numeric out of range misclassified")
	}
	if IsUniqueViolation(errors.New("duplicate key")) {
		t.Fatal("plain errors must not match")
	}
}

func TestClassify(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if Classify(nil) != nil {
			t.Fatal("expected nil")
		}
	})

	t.Run("bad conn -> unavailable", func(t *testing.T) {
		if err := Classify(driver.ErrBadConn); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("deadline -> unavailable", func(t *testing.T) {
		if err := Classify(context.DeadlineExceeded); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("connection class -> unavailable", func(t *testing.T) {
		if err := Classify(&pq.Error{Code: "08006"}); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("other -> storage", func(t *testing.T) {
		err := Classify(&pq.Error{Code: "42601"})
		if !errors.Is(err, ErrStorage) || errors.Is(err, ErrUnavailable) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("already classified passes through", func(t *testing.T) {
		in := fmt.Errorf("%w: x", ErrUnavailable)
		if Classify(in) != in {
			t.Fatal("expected same error")
		}
	})
}
