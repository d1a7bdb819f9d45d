package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/marketplace/pkg/httpx"
)

// routeSet is implemented by every httpapi handler.
type routeSet interface {
	Routes(r chi.Router)
}

type publicRouteSet interface {
	PublicRoutes(r chi.Router)
}

type pinger interface {
	PingContext(ctx context.Context) error
}

type routerDeps struct {
	log         *slog.Logger
	db          pinger
	corsOrigins []string
	auth        func(http.Handler) http.Handler
	handlers    []routeSet
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpx.RequestLogger(d.log))
	r.Use(middleware.Recoverer)
	r.Use(httpx.CORS(d.corsOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, httpx.MessageBody{Message: "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := d.db.PingContext(ctx); err != nil {
			httpx.WriteError(w, r, status.Error(codes.Unavailable, "database unavailable"))
			return
		}
		httpx.WriteJSON(w, http.StatusOK, httpx.MessageBody{Message: "ready"})
	})

	for _, h := range d.handlers {
		if p, ok := h.(publicRouteSet); ok {
			p.PublicRoutes(r)
		}
	}
	r.Group(func(r chi.Router) {
		r.Use(d.auth)
		for _, h := range d.handlers {
			h.Routes(r)
		}
	})
	return r
}
