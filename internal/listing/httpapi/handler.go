package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/listing/app"
	"github.com/dwikikusuma/marketplace/internal/listing/domain"
	"github.com/dwikikusuma/marketplace/pkg/httpx"
	"github.com/dwikikusuma/marketplace/pkg/postgres"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

// PublicRoutes mounts the read endpoints.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/listings", h.List)
	r.Get("/listings/{listingId}", h.Get)
}

// Routes mounts the write endpoints. The router must already require an identity.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/listings", h.Create)
	r.Put("/listings/{listingId}", h.Update)
	r.Delete("/listings/{listingId}", h.Delete)
}

type listingResponse struct {
	ID          int64           `json:"id"`
	SellerID    int64           `json:"seller_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Condition   string          `json:"condition"`
	Price       decimal.Decimal `json:"price"`
	Photo       *string         `json:"photo"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type listResponse struct {
	Listings   []listingResponse `json:"listings"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

type listingRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Condition   *string          `json:"condition"`
	Price       *decimal.Decimal `json:"price"`
	Photo       *string          `json:"photo"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var sellerID int64
	if v := q.Get("seller_id"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			httpx.BadRequest(w, r, "seller_id must be a positive integer")
			return
		}
		sellerID = n
	}
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httpx.BadRequest(w, r, "limit must be an integer")
			return
		}
		limit = n
	}

	listings, next, err := h.svc.List(r.Context(), q.Get("q"), sellerID, limit, q.Get("cursor"))
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}

	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toResponse(l))
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse{Listings: out, NextCursor: next})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathInt64(r, "listingId")
	if !ok {
		httpx.WriteError(w, r, mapErr(app.ErrNotFound))
		return
	}
	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(l))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	var req listingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r, "invalid JSON body")
		return
	}
	if req.Name == nil || req.Price == nil {
		httpx.BadRequest(w, r, "name and price are required")
		return
	}

	l := domain.Listing{Name: *req.Name, Price: *req.Price, Photo: req.Photo}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Condition != nil {
		l.Condition = *req.Condition
	}

	created, err := h.svc.Create(r.Context(), caller, l)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	id, ok := httpx.PathInt64(r, "listingId")
	if !ok {
		httpx.WriteError(w, r, mapErr(app.ErrNotFoundOrForbidden))
		return
	}

	var req listingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r, "invalid JSON body")
		return
	}

	l, err := h.svc.Update(r.Context(), caller, id, domain.Patch{
		Name:        req.Name,
		Description: req.Description,
		Condition:   req.Condition,
		Price:       req.Price,
		Photo:       req.Photo,
	})
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(l))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	id, ok := httpx.PathInt64(r, "listingId")
	if !ok {
		httpx.WriteError(w, r, mapErr(app.ErrNotFoundOrForbidden))
		return
	}
	if err := h.svc.Delete(r.Context(), caller, id); err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.MessageBody{Message: "Listing deleted"})
}

func toResponse(l domain.Listing) listingResponse {
	return listingResponse{
		ID:          l.ID,
		SellerID:    l.SellerID,
		Name:        l.Name,
		Description: l.Description,
		Condition:   l.Condition,
		Price:       l.Price,
		Photo:       l.Photo,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrNotFound), errors.Is(err, app.ErrNotFoundOrForbidden):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, postgres.ErrUnavailable):
		return status.Error(codes.Unavailable, "storage unavailable")
	}
	return status.Error(codes.Internal, err.Error())
}
