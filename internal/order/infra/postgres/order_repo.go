package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/dwikikusuma/marketplace/internal/order/app"
	"github.com/dwikikusuma/marketplace/internal/order/domain"
	"github.com/dwikikusuma/marketplace/pkg/postgres"
)

type OrderRepo struct {
	db *sql.DB
	tx *postgres.TxManager
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{
		db: db,
		tx: postgres.NewTxManager(db),
	}
}

// Create inserts the order and its items. It joins a transaction already
// carried by ctx, so checkout can add its own statements to the same unit.
func (r *OrderRepo) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	var created domain.Order

	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		run := postgres.GetRunner(ctx, r.db)

		const insertOrder = `
INSERT INTO orders (user_id, address, payment_method, items_total, shipping_cost, amount, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at`

		created = order
		err := run.QueryRowContext(ctx, insertOrder,
			order.UserID, order.Address, order.PaymentMethod,
			order.ItemsTotal, order.ShippingCost, order.Amount, order.Status,
		).Scan(&created.ID, &created.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", postgres.Classify(err))
		}

		const insertItem = `
INSERT INTO order_items (order_id, listing_id, listing_name, unit_price, quantity)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

		created.Items = make([]domain.Item, 0, len(order.Items))
		for i, item := range order.Items {
			item.OrderID = created.ID
			if err := run.QueryRowContext(ctx, insertItem,
				created.ID, item.ListingID, item.ListingName, item.UnitPrice, item.Quantity,
			).Scan(&item.ID); err != nil {
				return fmt.Errorf("failed to insert item %d: %w", i, postgres.Classify(err))
			}
			created.Items = append(created.Items, item)
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return created, nil
}

const selectOrder = `
SELECT id, user_id, address, payment_method, status, items_total, shipping_cost, amount, created_at
FROM orders`

func (r *OrderRepo) Get(ctx context.Context, orderID int64) (domain.Order, error) {
	run := postgres.GetRunner(ctx, r.db)

	o, err := scanOrder(run.QueryRowContext(ctx, selectOrder+` WHERE id = $1`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, app.ErrNotFoundOrForbidden
	}
	if err != nil {
		return domain.Order{}, postgres.Classify(err)
	}

	items, err := r.items(ctx, []int64{o.ID})
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	run := postgres.GetRunner(ctx, r.db)

	rows, err := run.QueryContext(ctx, selectOrder+` WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, postgres.Classify(err)
	}
	defer rows.Close()

	var (
		orders []domain.Order
		ids    []int64
	)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, postgres.Classify(err)
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.Classify(err)
	}
	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *OrderRepo) items(ctx context.Context, orderIDs []int64) (map[int64][]domain.Item, error) {
	const q = `
SELECT id, order_id, listing_id, listing_name, unit_price, quantity
FROM order_items
WHERE order_id = ANY($1)
ORDER BY order_id, id`

	rows, err := postgres.GetRunner(ctx, r.db).QueryContext(ctx, q, pq.Array(orderIDs))
	if err != nil {
		return nil, postgres.Classify(err)
	}
	defer rows.Close()

	out := make(map[int64][]domain.Item, len(orderIDs))
	for rows.Next() {
		var (
			it        domain.Item
			listingID sql.NullInt64
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &listingID, &it.ListingName, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, postgres.Classify(err)
		}
		if listingID.Valid {
			id := listingID.Int64
			it.ListingID = &id
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.Classify(err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Address, &o.PaymentMethod, &o.Status,
		&o.ItemsTotal, &o.ShippingCost, &o.Amount, &o.CreatedAt)
	return o, err
}
