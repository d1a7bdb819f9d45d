package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/marketplace/internal/checkout/app"
	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
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
	r.Post("/order/checkout", h.Checkout)
}

type checkoutRequest struct {
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

type checkoutResponse struct {
	OrderID       int64           `json:"order_id"`
	OrderAmount   decimal.Decimal `json:"order_amount"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	PaymentMethod string          `json:"payment_method"`
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	var req checkoutRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r, "invalid JSON body")
		return
	}

	receipt, err := h.svc.Checkout(r.Context(), id.ID, req.Address, req.PaymentMethod)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, checkoutResponse{
		OrderID:       receipt.OrderID,
		OrderAmount:   receipt.Quote.Amount,
		ShippingCost:  receipt.Quote.ShippingCost,
		PaymentMethod: receipt.PaymentMethod,
	})
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrEmptyCart):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, postgres.ErrUnavailable):
		return status.Error(codes.Unavailable, "storage unavailable")
	}
	return status.Error(codes.Internal, err.Error())
}
