package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// EventResultsResponse returns the raw stored rows for an event,
// serving the history view for past (non-current) events.
type EventResultsResponse struct {
	Players []Player `json:"players"`
	Answers []Answer `json:"answers"`
}

func handleEventResults(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
		if err != nil || eventID <= 0 {
			writeError(w, http.StatusBadRequest, errNoID)
			return
		}

		players, err := store.PlayersByEvent(r.Context(), eventID)
		if err != nil {
			logger.Error("loading event players", "event_id", eventID, "error", err)
			writeError(w, http.StatusInternalServerError, errDB)
			return
		}

		answers, err := store.AnswersByEvent(r.Context(), eventID)
		if err != nil {
			logger.Error("loading event answers", "event_id", eventID, "error", err)
			writeError(w, http.StatusInternalServerError, errDB)
			return
		}

		writeJSON(w, http.StatusOK, EventResultsResponse{Players: players, Answers: answers})
	}
}
