package server

import (
	"log/slog"
	"net/http"
)

// EventInfoResponse is the full pull-state for viewers and admins.
type EventInfoResponse struct {
	CurrentEventID   *int64             `json:"currentEventId"`
	CurrentEventName *string            `json:"currentEventName"`
	Events           []Event            `json:"events"`
	Leaderboard      []LeaderboardEntry `json:"leaderboard"`
}

func handleEventInfo(logger *slog.Logger, store Store, sess *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := store.ListEvents(r.Context())
		if err != nil {
			logger.Error("listing events", "error", err)
			writeError(w, http.StatusInternalServerError, errDB)
			return
		}

		sess.mu.Lock()

		// Self-healing pointer: if the current event vanished from the
		// list, fall back to the newest remaining one.
		var current *Event
		for i := range events {
			if events[i].ID == sess.eventID {
				current = &events[i]
				break
			}
		}
		switch {
		case current == nil && len(events) > 0:
			sess.adoptEventLocked(events[0].ID, events[0].Name)
		case current == nil:
			sess.clearEventLocked()
		default:
			sess.adoptEventLocked(current.ID, current.Name)
		}

		resp := EventInfoResponse{
			Events:      events,
			Leaderboard: sess.leaderboardLocked(),
		}
		if sess.eventID != 0 {
			id, name := sess.eventID, sess.eventName
			resp.CurrentEventID = &id
			resp.CurrentEventName = &name
		}
		sess.mu.Unlock()

		writeJSON(w, http.StatusOK, resp)
	}
}
