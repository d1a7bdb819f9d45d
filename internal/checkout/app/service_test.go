package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/marketplace/internal/checkout/domain"
)

// fakeTx stages writes and only applies them when fn succeeds.
type fakeTx struct {
	store *fakeStore
}

func (f fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := f.store.snapshot()
	if err := fn(ctx); err != nil {
		f.store.restore(snapshot)
		return err
	}
	return nil
}

type fakeStore struct {
	cartID   int64
	lines    []domain.Line
	orders   []domain.Quote
	clearErr error
	placeErr error
}

type storeState struct {
	lines  []domain.Line
	orders []domain.Quote
}

func (s *fakeStore) snapshot() storeState {
	return storeState{
		lines:  append([]domain.Line(nil), s.lines...),
		orders: append([]domain.Quote(nil), s.orders...),
	}
}

func (s *fakeStore) restore(st storeState) {
	s.lines = st.lines
	s.orders = st.orders
}

func (s *fakeStore) LockLines(context.Context, int64) (int64, []domain.Line, error) {
	return s.cartID, append([]domain.Line(nil), s.lines...), nil
}

func (s *fakeStore) Clear(context.Context, int64) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.lines = nil
	return nil
}

func (s *fakeStore) Place(_ context.Context, _ int64, _, _ string, q domain.Quote) (int64, error) {
	if s.placeErr != nil {
		return 0, s.placeErr
	}
	s.orders = append(s.orders, q)
	return int64(len(s.orders)), nil
}

type recordingNotifier struct {
	receipts []domain.Receipt
	err      error
}

func (n *recordingNotifier) OrderPlaced(_ context.Context, r domain.Receipt) error {
	n.receipts = append(n.receipts, r)
	return n.err
}

func newService(store *fakeStore, n Notifier) *Service {
	return NewService(fakeTx{store: store}, store, store, n, decimal.NewFromInt(5))
}

func TestCheckoutComputesTotalsAndClearsCart(t *testing.T) {
	store := &fakeStore{cartID: 9, lines: []domain.Line{
		{ListingID: 1, ListingName: "a", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		{ListingID: 2, ListingName: "b", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
	}}
	n := &recordingNotifier{}

	r, err := newService(store, n).Checkout(context.Background(), 1, " 1 Main St ", "card")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if !r.Quote.Amount.Equal(decimal.NewFromInt(30)) || !r.Quote.ShippingCost.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("unexpected quote: %+v", r.Quote)
	}
	if r.OrderID != 1 || r.Address != "1 Main St" {
		t.Fatalf("unexpected receipt: %+v", r)
	}
	if len(store.lines) != 0 {
		t.Fatal("cart not cleared")
	}
	if len(n.receipts) != 1 {
		t.Fatalf("notifications = %d", len(n.receipts))
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	for name, store := range map[string]*fakeStore{
		"no cart":  {},
		"no items": {cartID: 3},
	} {
		t.Run(name, func(t *testing.T) {
			n := &recordingNotifier{}
			_, err := newService(store, n).Checkout(context.Background(), 1, "addr", "card")
			if !errors.Is(err, ErrEmptyCart) {
				t.Fatalf("err = %v", err)
			}
			if len(store.orders) != 0 || len(n.receipts) != 0 {
				t.Fatal("order created for empty cart")
			}
		})
	}
}

func TestCheckoutInvalidInput(t *testing.T) {
	store := &fakeStore{cartID: 1, lines: []domain.Line{{ListingID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(1)}}}
	for _, tc := range [][2]string{{"", "card"}, {"addr", ""}, {"  ", "card"}, {"addr", "\t"}} {
		_, err := newService(store, nil).Checkout(context.Background(), 1, tc[0], tc[1])
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%q: err = %v", tc, err)
		}
	}
	if len(store.lines) != 1 || len(store.orders) != 0 {
		t.Fatal("store mutated")
	}
}

func TestCheckoutClearFailureRollsBack(t *testing.T) {
	store := &fakeStore{
		cartID:   1,
		lines:    []domain.Line{{ListingID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(1)}},
		clearErr: errors.New("boom"),
	}
	n := &recordingNotifier{}

	_, err := newService(store, n).Checkout(context.Background(), 1, "addr", "card")
	if !errors.Is(err, ErrCheckoutPartialFailure) {
		t.Fatalf("err = %v", err)
	}
	if len(store.orders) != 0 {
		t.Fatal("order survived rollback")
	}
	if len(store.lines) != 1 {
		t.Fatal("cart lines lost")
	}
	if len(n.receipts) != 0 {
		t.Fatal("notified about a rolled back order")
	}
}

func TestCheckoutPlaceFailure(t *testing.T) {
	placeErr := errors.New("insert failed")
	store := &fakeStore{
		cartID:   1,
		lines:    []domain.Line{{ListingID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(1)}},
		placeErr: placeErr,
	}
	_, err := newService(store, nil).Checkout(context.Background(), 1, "addr", "card")
	if !errors.Is(err, placeErr) {
		t.Fatalf("err = %v", err)
	}
	if len(store.lines) != 1 {
		t.Fatal("cart cleared after failed insert")
	}
}

func TestCheckoutNotifierFailureIgnored(t *testing.T) {
	store := &fakeStore{cartID: 1, lines: []domain.Line{{ListingID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(1)}}}
	n := &recordingNotifier{err: errors.New("smtp down")}

	r, err := newService(store, n).Checkout(context.Background(), 1, "addr", "card")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if r.OrderID == 0 {
		t.Fatal("missing order id")
	}
}
