package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/media/app"
	"github.com/dwikikusuma/marketplace/pkg/httpx"
)

// multipart headers and boundaries on top of the image itself
const formOverhead = 64 << 10

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/images/*", h.Get)
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/images", h.Upload)
}

type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	limit := h.svc.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit+formOverhead)
	if err := r.ParseMultipartForm(limit + formOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			httpx.WriteError(w, r, mapErr(app.ErrTooLarge))
			return
		}
		httpx.BadRequest(w, r, "expected a multipart form with an image field")
		return
	}
	defer r.MultipartForm.RemoveAll()

	f, _, err := r.FormFile("image")
	if err != nil {
		httpx.BadRequest(w, r, "image field is required")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		httpx.BadRequest(w, r, "could not read image")
		return
	}

	key, err := h.svc.Upload(r.Context(), caller.ID, data)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, uploadResponse{Key: key, URL: "/images/" + key})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := h.svc.Get(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrEmpty), errors.Is(err, app.ErrTooLarge), errors.Is(err, app.ErrUnsupportedType):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
