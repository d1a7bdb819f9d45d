package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/marketplace/internal/cart/app"
	"github.com/dwikikusuma/marketplace/internal/cart/domain"
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

// Routes mounts the cart endpoints. The router must already require an identity.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/cart", h.GetCart)
	r.Post("/cart/add", h.AddItem)
	r.Delete("/cart/remove/{cartItemId}", h.RemoveItem)
}

type itemResponse struct {
	CartItemID  int64           `json:"cart_item_id"`
	ProductID   int64           `json:"product_id"`
	Quantity    int32           `json:"quantity"`
	ListingName string          `json:"listing_name"`
	Price       decimal.Decimal `json:"price"`
	Photo       *string         `json:"photo"`
}

type cartResponse struct {
	CartID int64          `json:"cart_id"`
	Items  []itemResponse `json:"items"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	cart, err := h.svc.GetOrCreate(r.Context(), id.ID)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	items, err := h.svc.ListItems(r.Context(), id.ID)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toResponse(cart, items))
}

type addRequest struct {
	ProductID json.Number  `json:"product_id"`
	Quantity  *json.Number `json:"quantity"`
}

type addResponse struct {
	Message    string `json:"message"`
	CartItemID int64  `json:"cart_item_id"`
	Quantity   int32  `json:"quantity"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	var req addRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r, "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		httpx.BadRequest(w, r, "product_id is required")
		return
	}
	listingID, err := strconv.ParseInt(req.ProductID.String(), 10, 64)
	if err != nil || listingID <= 0 {
		httpx.BadRequest(w, r, "product_id must be a positive integer")
		return
	}

	quantity := int32(1)
	if req.Quantity != nil {
		q, err := strconv.ParseInt(req.Quantity.String(), 10, 32)
		if err != nil {
			httpx.WriteError(w, r, mapErr(app.ErrInvalidQuantity))
			return
		}
		quantity = int32(q)
	}

	res, err := h.svc.AddItem(r.Context(), id.ID, listingID, quantity)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}

	code, msg := http.StatusOK, "Cart item quantity updated"
	if res.Created {
		code, msg = http.StatusCreated, "Item added to cart"
	}
	httpx.WriteJSON(w, code, addResponse{Message: msg, CartItemID: res.ItemID, Quantity: res.Quantity})
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	itemID, ok := httpx.PathInt64(r, "cartItemId")
	if !ok {
		httpx.WriteError(w, r, mapErr(app.ErrNotFound))
		return
	}

	if err := h.svc.RemoveItem(r.Context(), id.ID, itemID); err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.MessageBody{Message: "Item removed from cart"})
}

func toResponse(cart domain.Cart, items []domain.Item) cartResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, itemResponse{
			CartItemID:  it.ID,
			ProductID:   it.ListingID,
			Quantity:    it.Quantity,
			ListingName: it.ListingName,
			Price:       it.Price,
			Photo:       it.Photo,
		})
	}
	return cartResponse{CartID: cart.ID, Items: out}
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidQuantity), errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrNotFound), errors.Is(err, app.ErrListingNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, postgres.ErrUnavailable):
		return status.Error(codes.Unavailable, "storage unavailable")
	}
	return status.Error(codes.Internal, err.Error())
}
