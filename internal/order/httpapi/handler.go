package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/order/app"
	"github.com/dwikikusuma/marketplace/internal/order/domain"
	"github.com/dwikikusuma/marketplace/pkg/httpx"
	"github.com/dwikikusuma/marketplace/pkg/postgres"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/orders", h.List)
	r.Get("/orders/{orderId}", h.Get)
}

type itemResponse struct {
	ProductID   *int64          `json:"product_id"`
	ListingName string          `json:"listing_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int32           `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type orderResponse struct {
	OrderID       int64           `json:"order_id"`
	Status        string          `json:"status"`
	Address       string          `json:"address"`
	PaymentMethod string          `json:"payment_method"`
	ItemsTotal    decimal.Decimal `json:"items_total"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	OrderAmount   decimal.Decimal `json:"order_amount"`
	Items         []itemResponse  `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	orders, err := h.svc.ListForUser(r.Context(), caller.ID)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toResponse(o))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"orders": out})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	orderID, ok := httpx.PathInt64(r, "orderId")
	if !ok {
		httpx.WriteError(w, r, mapErr(app.ErrNotFoundOrForbidden))
		return
	}

	o, err := h.svc.Get(r.Context(), caller, orderID)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(o))
}

func toResponse(o domain.Order) orderResponse {
	items := make([]itemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemResponse{
			ProductID:   it.ListingID,
			ListingName: it.ListingName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			LineTotal:   it.LineTotal(),
		})
	}
	return orderResponse{
		OrderID:       o.ID,
		Status:        o.Status,
		Address:       o.Address,
		PaymentMethod: o.PaymentMethod,
		ItemsTotal:    o.ItemsTotal,
		ShippingCost:  o.ShippingCost,
		OrderAmount:   o.Amount,
		Items:         items,
		CreatedAt:     o.CreatedAt,
	}
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrNotFoundOrForbidden):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, postgres.ErrUnavailable):
		return status.Error(codes.Unavailable, "storage unavailable")
	}
	return status.Error(codes.Internal, err.Error())
}
