package server

import (
	"encoding/json"
	"net/http"
)

// Failure codes returned in error bodies.
const (
	errNoName        = "no_name"
	errNoID          = "no_id"
	errNoEvent       = "no_event"
	errAlreadyPlayed = "already_played"
	errDB            = "db_error"
	errGeneric       = "error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
