package app

import (
	"context"
	"errors"
	"testing"

	"github.com/dwikikusuma/marketplace/internal/cart/domain"
)

// memRepo mirrors the constraints the postgres schema enforces: one cart per
// user, one line per (cart, listing).
type memRepo struct {
	carts    map[int64]domain.Cart
	items    map[int64]*domain.Item
	listings map[int64]bool
	nextID   int64

	// raceOnCreate makes the first Create lose against a concurrent creator.
	raceOnCreate bool
	upserts      int
}

func newMemRepo(listings ...int64) *memRepo {
	r := &memRepo{
		carts:    map[int64]domain.Cart{},
		items:    map[int64]*domain.Item{},
		listings: map[int64]bool{},
	}
	for _, id := range listings {
		r.listings[id] = true
	}
	return r
}

func (r *memRepo) id() int64 { r.nextID++; return r.nextID }

func (r *memRepo) Get(_ context.Context, userID int64) (domain.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return domain.Cart{}, ErrNotFound
	}
	return c, nil
}

func (r *memRepo) Lock(ctx context.Context, userID int64) (domain.Cart, error) {
	return r.Get(ctx, userID)
}

func (r *memRepo) Create(_ context.Context, userID int64) (domain.Cart, error) {
	if r.raceOnCreate {
		r.raceOnCreate = false
		r.carts[userID] = domain.Cart{ID: r.id(), UserID: userID}
		return domain.Cart{}, ErrCartExists
	}
	if _, ok := r.carts[userID]; ok {
		return domain.Cart{}, ErrCartExists
	}
	c := domain.Cart{ID: r.id(), UserID: userID}
	r.carts[userID] = c
	return c, nil
}

func (r *memRepo) UpsertItem(_ context.Context, cartID, listingID int64, q int32) (domain.AddResult, error) {
	r.upserts++
	if !r.listings[listingID] {
		return domain.AddResult{}, ErrListingNotFound
	}
	for _, it := range r.items {
		if it.CartID == cartID && it.ListingID == listingID {
			it.Quantity += q
			return domain.AddResult{ItemID: it.ID, Quantity: it.Quantity}, nil
		}
	}
	it := &domain.Item{ID: r.id(), CartID: cartID, ListingID: listingID, Quantity: q}
	r.items[it.ID] = it
	return domain.AddResult{ItemID: it.ID, Quantity: q, Created: true}, nil
}

func (r *memRepo) cartOf(userID int64) int64 { return r.carts[userID].ID }

func (r *memRepo) RemoveItem(_ context.Context, userID, itemID int64) (bool, error) {
	it, ok := r.items[itemID]
	if !ok || it.CartID != r.cartOf(userID) {
		return false, nil
	}
	delete(r.items, itemID)
	return true, nil
}

func (r *memRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Item, error) {
	c, ok := r.carts[userID]
	if !ok {
		return nil, nil
	}
	return r.ListByCart(ctx, c.ID)
}

func (r *memRepo) ListByCart(_ context.Context, cartID int64) ([]domain.Item, error) {
	var out []domain.Item
	for _, it := range r.items {
		if it.CartID == cartID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *memRepo) Clear(_ context.Context, cartID int64) error {
	for id, it := range r.items {
		if it.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}

func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("idempotent", func(t *testing.T) {
		svc := NewService(newMemRepo())
		a, err := svc.GetOrCreate(ctx, 1)
		if err != nil {
			t.Fatalf("first: %v", err)
		}
		b, err := svc.GetOrCreate(ctx, 1)
		if err != nil || a.ID != b.ID {
			t.Fatalf("second: %+v %v", b, err)
		}
	})

	t.Run("lost race re-reads winner", func(t *testing.T) {
		repo := newMemRepo()
		repo.raceOnCreate = true
		c, err := NewService(repo).GetOrCreate(ctx, 2)
		if err != nil {
			t.Fatalf("GetOrCreate: %v", err)
		}
		if c.ID != repo.carts[2].ID || len(repo.carts) != 1 {
			t.Fatalf("expected the concurrent cart, got %+v", c)
		}
	})

	t.Run("bad user", func(t *testing.T) {
		if _, err := NewService(newMemRepo()).GetOrCreate(ctx, 0); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestAddItemMerges(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo(10)
	svc := NewService(repo)

	first, err := svc.AddItem(ctx, 1, 10, 2)
	if err != nil || !first.Created {
		t.Fatalf("first add: %+v %v", first, err)
	}
	second, err := svc.AddItem(ctx, 1, 10, 3)
	if err != nil || second.Created {
		t.Fatalf("second add: %+v %v", second, err)
	}

	items, _ := svc.ListItems(ctx, 1)
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("expected one line with quantity 5, got %+v", items)
	}
}

func TestAddItemRejectsBadQuantityWithoutTouchingStore(t *testing.T) {
	ctx := context.Background()
	for _, q := range []int32{0, -1, -100} {
		repo := newMemRepo(10)
		_, err := NewService(repo).AddItem(ctx, 1, 10, q)
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("quantity %d: got %v", q, err)
		}
		if repo.upserts != 0 || len(repo.carts) != 0 {
			t.Fatalf("quantity %d: store was touched", q)
		}
	}
}

func TestAddItemUnknownListing(t *testing.T) {
	_, err := NewService(newMemRepo()).AddItem(context.Background(), 1, 99, 1)
	if !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestRemoveItemOwnership(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo(10)
	svc := NewService(repo)

	mine, _ := svc.AddItem(ctx, 1, 10, 1)
	theirs, _ := svc.AddItem(ctx, 2, 10, 4)

	if err := svc.RemoveItem(ctx, 1, theirs.ItemID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("removing another user's line: got %v", err)
	}
	if items, _ := svc.ListItems(ctx, 2); len(items) != 1 || items[0].Quantity != 4 {
		t.Fatalf("other cart changed: %+v", items)
	}
	if items, _ := svc.ListItems(ctx, 1); len(items) != 1 {
		t.Fatalf("own cart changed: %+v", items)
	}

	if err := svc.RemoveItem(ctx, 1, mine.ItemID); err != nil {
		t.Fatalf("remove own line: %v", err)
	}
	if err := svc.RemoveItem(ctx, 1, mine.ItemID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second remove: got %v", err)
	}
}

func TestListItemsEmpty(t *testing.T) {
	items, err := NewService(newMemRepo()).ListItems(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestLockForCheckoutWithoutCart(t *testing.T) {
	_, items, err := NewService(newMemRepo()).LockForCheckout(context.Background(), 9)
	if err != nil || len(items) != 0 {
		t.Fatalf("got %v %v", items, err)
	}
}
