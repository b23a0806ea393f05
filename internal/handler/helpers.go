// Package handler implements the HTTP API.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hotelmind/backend/internal/auth"
)

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// WriteJSON writes a JSON response (exported version)
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// writeError writes an error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// propertyID resolves the authenticated property scope of a request.
// Every data route sits behind the auth middleware, so a missing claim
// is a programming error rather than a user one.
func propertyID(r *http.Request) (uuid.UUID, bool) {
	id, ok := auth.GetPropertyIDFromContext(r.Context())
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// periodRange reads the from/to period query parameters, defaulting to
// the last twelve months.
func periodRange(r *http.Request) (string, string) {
	now := time.Now().UTC()
	from := r.URL.Query().Get("from")
	if from == "" {
		from = now.AddDate(-1, 0, 0).Format("2006-01")
	}
	to := r.URL.Query().Get("to")
	if to == "" {
		to = now.Format("2006-01")
	}
	return from, to
}

// queryInt reads an integer query parameter, falling back to def when
// absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := parseInt(raw)
	if err != nil {
		return def
	}
	return n
}
