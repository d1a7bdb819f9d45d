package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/marketplace/pkg/logger"
)

const maxBodyBytes = 1 << 20

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MessageBody struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an ErrorBody. err should carry a gRPC status;
// anything else is logged and reported as a 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	code, name, msg := StatusFromGRPC(err)
	log := logger.FromContext(r.Context())
	if code >= http.StatusInternalServerError {
		log.Error("request failed", slog.Any("err", err), slog.Int("status", code))
	} else {
		log.Debug("request rejected", slog.Any("err", err), slog.Int("status", code))
	}
	WriteJSON(w, code, ErrorBody{Code: name, Message: msg})
}

// BadRequest writes a 400 with the given message.
func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	WriteError(w, r, status.Error(codes.InvalidArgument, msg))
}

// DecodeJSON decodes a size-limited JSON body into dst. An empty body leaves
// dst untouched.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// PathInt64 parses a positive numeric URL parameter.
func PathInt64(r *http.Request, name string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, name)), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
