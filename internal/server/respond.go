// ABOUTME: JSON response envelope helpers and store error mapping
// ABOUTME: Every API response is {success, message?, data?}

package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shuvo-dev/portfolio-server/internal/store"
)

// envelope is the JSON shape of every API response
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// writeData writes a successful response carrying a data payload
func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// writeMessage writes a successful response carrying only a message
func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: msg})
}

// writeCreated writes a successful creation response with a message and payload
func writeCreated(w http.ResponseWriter, msg string, data any) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Message: msg, Data: data})
}

// writeError writes a failure response with the given status
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

// writeStoreError maps store errors onto the API error taxonomy.
// ErrNotFound becomes 404; anything else is a storage failure, logged and
// surfaced as 500 without killing the process.
func writeStoreError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	slog.Error("storage failure", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
