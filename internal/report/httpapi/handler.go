package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/report/app"
	"github.com/dwikikusuma/marketplace/internal/report/domain"
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
	r.Post("/reports", h.Create)
	r.Get("/reports", h.List)
}

type reportRequest struct {
	ListingID *int64 `json:"listing_id"`
	CommentID *int64 `json:"comment_id"`
	Reason    string `json:"reason"`
}

type reportResponse struct {
	ID         int64     `json:"id"`
	ReporterID int64     `json:"reporter_id"`
	ListingID  *int64    `json:"listing_id"`
	CommentID  *int64    `json:"comment_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

type listResponse struct {
	Reports []reportResponse `json:"reports"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	var req reportRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r, "invalid JSON body")
		return
	}

	rep, err := h.svc.Create(r.Context(), caller, req.ListingID, req.CommentID, req.Reason)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toResponse(rep))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	reports, err := h.svc.List(r.Context(), caller)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	out := make([]reportResponse, 0, len(reports))
	for _, rep := range reports {
		out = append(out, toResponse(rep))
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse{Reports: out})
}

func toResponse(r domain.Report) reportResponse {
	return reportResponse{
		ID:         r.ID,
		ReporterID: r.ReporterID,
		ListingID:  r.ListingID,
		CommentID:  r.CommentID,
		Reason:     r.Reason,
		CreatedAt:  r.CreatedAt,
	}
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrTargetNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, app.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, postgres.ErrUnavailable):
		return status.Error(codes.Unavailable, "storage unavailable")
	}
	return status.Error(codes.Internal, err.Error())
}
