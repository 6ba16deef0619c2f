// Package handler wires the move history endpoints to the history service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"movehistory/internal/history/service"
	"movehistory/pkg/platform/sentinel"
	"movehistory/pkg/requestcontext"
)

// Service defines the history operations the handler depends on.
type Service interface {
	MoveHistory(ctx context.Context, locator string, page, perPage int64) (*service.HistoryPage, error)
}

// Handler is the thin HTTP layer over the history service. Transport concerns
// only; classification and rendering live in the service and engine.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a history handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts history endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/moves/{locator}/history", h.HandleMoveHistory)
}

// HandleMoveHistory handles GET /moves/{locator}/history requests.
func (h *Handler) HandleMoveHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locator := chi.URLParam(r, "locator")
	if locator == "" {
		writeError(w, http.StatusBadRequest, "move locator is required")
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "perPage", service.DefaultPerPage)

	result, err := h.service.MoveHistory(ctx, locator, page, perPage)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "move not found")
			return
		}
		h.logger.ErrorContext(ctx, "move history fetch failed",
			"request_id", requestcontext.RequestID(ctx),
			"locator", locator,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// queryInt parses a positive integer query parameter, falling back to def for
// absent or malformed values.
func queryInt(r *http.Request, key string, def int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 1 {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
