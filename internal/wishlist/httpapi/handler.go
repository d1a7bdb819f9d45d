package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/wishlist/app"
	"github.com/dwikikusuma/marketplace/pkg/httpx"
	"github.com/dwikikusuma/marketplace/pkg/postgres"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the wishlist endpoints. The router must already require an identity.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/wishlist", h.List)
	r.Post("/wishlist", h.Add)
	r.Delete("/wishlist/{listingId}", h.Remove)
}

type addRequest struct {
	ListingID json.Number `json:"listing_id"`
}

type entryResponse struct {
	ListingID   int64           `json:"listing_id"`
	ListingName string          `json:"listing_name"`
	Price       decimal.Decimal `json:"price"`
	Photo       *string         `json:"photo"`
	AddedAt     time.Time       `json:"added_at"`
}

type listResponse struct {
	Items []entryResponse `json:"items"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	entries, err := h.svc.List(r.Context(), caller.ID)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse{
			ListingID:   e.ListingID,
			ListingName: e.ListingName,
			Price:       e.Price,
			Photo:       e.Photo,
			AddedAt:     e.CreatedAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse{Items: out})
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	var req addRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r, "invalid JSON body")
		return
	}
	listingID, err := strconv.ParseInt(req.ListingID.String(), 10, 64)
	if err != nil || listingID <= 0 {
		httpx.BadRequest(w, r, "listing_id must be a positive integer")
		return
	}

	if err := h.svc.Add(r.Context(), caller.ID, listingID); err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, httpx.MessageBody{Message: "Listing added to wishlist"})
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	listingID, ok := httpx.PathInt64(r, "listingId")
	if !ok {
		httpx.WriteError(w, r, mapErr(app.ErrNotFound))
		return
	}
	if err := h.svc.Remove(r.Context(), caller.ID, listingID); err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.MessageBody{Message: "Listing removed from wishlist"})
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrAlreadySaved):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, app.ErrListingNotFound), errors.Is(err, app.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, postgres.ErrUnavailable):
		return status.Error(codes.Unavailable, "storage unavailable")
	}
	return status.Error(codes.Internal, err.Error())
}
