package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/marketplace/internal/comment/app"
	"github.com/dwikikusuma/marketplace/internal/comment/domain"
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

func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/listings/{listingId}/comments", h.List)
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/listings/{listingId}/comments", h.Create)
	r.Put("/comments/{commentId}", h.Update)
	r.Delete("/comments/{commentId}", h.Delete)
}

type commentRequest struct {
	Body string `json:"body"`
}

type commentResponse struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listing_id"`
	UserID    int64     `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listResponse struct {
	Comments []commentResponse `json:"comments"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	listingID, ok := httpx.PathInt64(r, "listingId")
	if !ok {
		httpx.WriteError(w, r, mapErr(app.ErrListingNotFound))
		return
	}
	comments, err := h.svc.List(r.Context(), listingID)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse{Comments: out})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	listingID, ok := httpx.PathInt64(r, "listingId")
	if !ok {
		httpx.WriteError(w, r, mapErr(app.ErrListingNotFound))
		return
	}
	var req commentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r, "invalid JSON body")
		return
	}

	c, err := h.svc.Create(r.Context(), caller, listingID, req.Body)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	id, ok := httpx.PathInt64(r, "commentId")
	if !ok {
		httpx.WriteError(w, r, mapErr(app.ErrNotFoundOrForbidden))
		return
	}
	var req commentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r, "invalid JSON body")
		return
	}

	c, err := h.svc.Update(r.Context(), caller, id, req.Body)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	id, ok := httpx.PathInt64(r, "commentId")
	if !ok {
		httpx.WriteError(w, r, mapErr(app.ErrNotFoundOrForbidden))
		return
	}
	if err := h.svc.Delete(r.Context(), caller, id); err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.MessageBody{Message: "Comment deleted"})
}

func toResponse(c domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		ListingID: c.ListingID,
		UserID:    c.UserID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrListingNotFound), errors.Is(err, app.ErrNotFoundOrForbidden):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, postgres.ErrUnavailable):
		return status.Error(codes.Unavailable, "storage unavailable")
	}
	return status.Error(codes.Internal, err.Error())
}
