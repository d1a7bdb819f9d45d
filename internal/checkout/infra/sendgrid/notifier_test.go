package sendgrid

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/marketplace/internal/checkout/domain"
)

type failLookup struct{ called bool }

func (f *failLookup) Email(context.Context, int64) (string, error) {
	f.called = true
	return "", io.EOF
}

func TestNotifierDisabledWithoutKey(t *testing.T) {
	lookup := &failLookup{}
	n := NewNotifier("", "shop@example.com", lookup, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if n.Enabled() {
		t.Fatal("expected disabled notifier")
	}
	if err := n.OrderPlaced(context.Background(), domain.Receipt{OrderID: 1}); err != nil {
		t.Fatalf("OrderPlaced: %v", err)
	}
	if lookup.called {
		t.Fatal("disabled notifier looked up email")
	}
}

func TestConfirmationBody(t *testing.T) {
	r := domain.Receipt{
		OrderID:       42,
		UserID:        7,
		Address:       "1 Main St <b>rear</b>",
		PaymentMethod: "card",
		Quote: domain.NewQuote([]domain.Line{
			{ListingID: 1, ListingName: "Lamp", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		}, decimal.NewFromInt(5)),
	}

	msg := confirmation("shop@example.com", "buyer@example.com", r)

	if msg.Subject != "Order #42 confirmed" {
		t.Fatalf("subject = %q", msg.Subject)
	}
	if len(msg.Personalizations) != 1 || msg.Personalizations[0].To[0].Address != "buyer@example.com" {
		t.Fatalf("unexpected recipients: %+v", msg.Personalizations)
	}
	text := msg.Content[0].Value
	for _, want := range []string{"2 x Lamp @ 10.00 = 20.00", "Shipping: 5.00", "Total: 25.00", "Ship to: 1 Main St <b>rear</b>"} {
		if !strings.Contains(text, want) {
			t.Fatalf("body missing %q:\n%s", want, text)
		}
	}

	htmlPart := msg.Content[1].Value
	if strings.Contains(htmlPart, "<b>") || !strings.Contains(htmlPart, "&lt;b&gt;rear&lt;/b&gt;") {
		t.Fatalf("address not escaped: %s", htmlPart)
	}
}

type staticLookup string

func (s staticLookup) Email(context.Context, int64) (string, error) { return string(s), nil }

func testNotifier(host string, timeout time.Duration) *Notifier {
	n := NewNotifier("SG.test", "shop@example.com", staticLookup("buyer@example.com"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	n.host = host
	n.timeout = timeout
	return n
}

func TestOrderPlacedSends(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n := testNotifier(srv.URL, time.Second)
	if err := n.OrderPlaced(context.Background(), domain.Receipt{OrderID: 9, UserID: 1}); err != nil {
		t.Fatalf("OrderPlaced: %v", err)
	}
	if gotAuth != "Bearer SG.test" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if !strings.Contains(gotBody, "buyer@example.com") || !strings.Contains(gotBody, "Order #9 confirmed") {
		t.Fatalf("unexpected payload: %s", gotBody)
	}
}

func TestOrderPlacedRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	if err := testNotifier(srv.URL, time.Second).OrderPlaced(context.Background(), domain.Receipt{OrderID: 1}); err == nil {
		t.Fatal("expected error for 401")
	}
}

func TestOrderPlacedTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	err := testNotifier(srv.URL, 50*time.Millisecond).OrderPlaced(context.Background(), domain.Receipt{OrderID: 1})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("send took %s", elapsed)
	}
}
