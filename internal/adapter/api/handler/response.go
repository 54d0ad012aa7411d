package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/megagames/logview/internal/domain"
)

// errorResponse is the JSON body for failed requests. The presentation layer
// relies on the status code to tell "no logs matched" (200 with an empty
// list) apart from "could not reach the store" (502).
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrInvalidDeletePath):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}
	writeJSON(w, logger, status, errorResponse{Error: err.Error()})
}

func badRequest(w http.ResponseWriter, logger *slog.Logger, msg string) {
	writeJSON(w, logger, http.StatusBadRequest, errorResponse{Error: msg})
}
