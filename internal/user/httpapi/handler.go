package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	identity "github.com/dwikikusuma/marketplace/internal/identity/domain"
	"github.com/dwikikusuma/marketplace/internal/user/app"
	"github.com/dwikikusuma/marketplace/internal/user/domain"
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
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/users/{userId}", h.GetUser)
}

// Routes mounts the endpoints that need a caller identity.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/me", h.Me)
	r.Put("/users/{userId}", h.UpdateUser)
}

type userResponse struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Surname        string    `json:"surname"`
	Age            *int32    `json:"age"`
	Bio            *string   `json:"bio"`
	ProfilePicture *string   `json:"profile_picture"`
	Role           string    `json:"role"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type profileRequest struct {
	Email          *string `json:"email"`
	Name           *string `json:"name"`
	Surname        *string `json:"surname"`
	Age            *int32  `json:"age"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r, "invalid JSON body")
		return
	}

	u, err := h.svc.Register(r.Context(), app.Registration{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
		Surname:  req.Surname,
	})
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, registerResponse{Message: "User registered", User: toResponse(u)})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r, "invalid JSON body")
		return
	}

	token, u, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, loginResponse{Message: "Login successful", Token: token, User: toResponse(u)})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathInt64(r, "userId")
	if !ok {
		httpx.WriteError(w, r, mapErr(app.ErrNotFound))
		return
	}
	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(u))
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	u, err := h.svc.Get(r.Context(), caller.ID)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(u))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	id, ok := httpx.PathInt64(r, "userId")
	if !ok {
		httpx.WriteError(w, r, mapErr(app.ErrNotFound))
		return
	}

	var req profileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, r, "invalid JSON body")
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), caller, id, domain.ProfilePatch{
		Email:          req.Email,
		Name:           req.Name,
		Surname:        req.Surname,
		Age:            req.Age,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(u))
}

func toResponse(u domain.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Name:           u.Name,
		Surname:        u.Surname,
		Age:            u.Age,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		Role:           u.Role(),
		IsAdmin:        u.IsAdmin,
		CreatedAt:      u.CreatedAt,
	}
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, app.ErrConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, app.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, app.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, postgres.ErrUnavailable):
		return status.Error(codes.Unavailable, "storage unavailable")
	}
	return status.Error(codes.Internal, err.Error())
}
