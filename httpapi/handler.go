// Package httpapi serves the journal as a local JSON API.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rustyeddy/cryptojournal/backup"
	"github.com/rustyeddy/cryptojournal/internal/logging"
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/market"
	"github.com/rustyeddy/cryptojournal/tracker"
)

// Handler serves API requests. The watcher is optional; without it the
// ticker route reports the feed as disabled.
type Handler struct {
	tracker *tracker.Tracker
	watcher *market.Watcher
	logger  *slog.Logger

	streamInterval time.Duration
}

func New(tr *tracker.Tracker, watcher *market.Watcher, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{
		tracker:        tr,
		watcher:        watcher,
		logger:         logger,
		streamInterval: time.Second,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, statusCode int, message string) {
	h.respondJSON(w, statusCode, ErrorResponse{Error: message})
}

func (h *Handler) respondSuccess(w http.ResponseWriter, message string, data any) {
	h.respondJSON(w, http.StatusOK, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// respondFailure maps domain errors onto status codes.
func (h *Handler) respondFailure(w http.ResponseWriter, err error) {
	var (
		invalid   *journal.InvalidInputError
		malformed *backup.MalformedImportError
	)
	switch {
	case errors.As(err, &invalid), errors.As(err, &malformed):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", "error", err)
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// decode reads a JSON body into dst, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &journal.InvalidInputError{Field: "body", Reason: err.Error()}
	}
	return nil
}
