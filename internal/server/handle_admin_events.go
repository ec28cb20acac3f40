package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// CreateEventRequest is the body for POST /api/admin/events.
type CreateEventRequest struct {
	Name string `json:"name"`
}

// CreateEventResponse confirms the new current event.
type CreateEventResponse struct {
	OK               bool   `json:"ok"`
	CurrentEventID   int64  `json:"currentEventId"`
	CurrentEventName string `json:"currentEventName"`
}

func handleCreateEvent(logger *slog.Logger, store Store, sess *Session, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateEventRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, errNoName)
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, errNoName)
			return
		}

		sess.mu.Lock()
		id, err := store.CreateEvent(r.Context(), req.Name, time.Now().UnixMilli())
		if err != nil {
			sess.mu.Unlock()
			logger.Error("creating event", "error", err)
			writeError(w, http.StatusInternalServerError, errDB)
			return
		}

		// A new event becomes current and wipes all session players.
		sess.setEventLocked(id, req.Name)
		board := sess.leaderboardLocked()
		sess.mu.Unlock()

		writeJSON(w, http.StatusOK, CreateEventResponse{
			OK:               true,
			CurrentEventID:   id,
			CurrentEventName: req.Name,
		})

		name := req.Name
		broker.Publish(Update{
			Type:             "eventChanged",
			CurrentEventID:   &id,
			CurrentEventName: &name,
			Leaderboard:      board,
		})
	}
}

func handleDeleteEvent(logger *slog.Logger, store Store, sess *Session, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
		if err != nil || eventID <= 0 {
			writeError(w, http.StatusBadRequest, errNoID)
			return
		}

		sess.mu.Lock()
		if err := store.DeleteEventData(r.Context(), eventID); err != nil {
			sess.mu.Unlock()
			logger.Error("deleting event", "event_id", eventID, "error", err)
			writeError(w, http.StatusInternalServerError, errDB)
			return
		}

		sess.dropEventPlayersLocked(eventID)

		// The newest remaining event becomes current. Switching to a
		// different event discards any session players left over.
		latest, err := store.LatestEvent(r.Context())
		switch {
		case err == nil && latest.ID != sess.eventID:
			sess.setEventLocked(latest.ID, latest.Name)
		case err == nil:
			sess.adoptEventLocked(latest.ID, latest.Name)
		default:
			if !errors.Is(err, ErrNotFound) {
				logger.Error("selecting event after delete", "error", err)
			}
			sess.clearEventLocked()
		}

		update := Update{Type: "eventChanged", Leaderboard: sess.leaderboardLocked()}
		if sess.eventID != 0 {
			id, name := sess.eventID, sess.eventName
			update.CurrentEventID = &id
			update.CurrentEventName = &name
		}
		sess.mu.Unlock()

		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		broker.Publish(update)
	}
}
