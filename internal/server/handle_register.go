package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// RegisterRequest is the body for POST /api/players.
type RegisterRequest struct {
	Org         string `json:"org"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
}

// RegisterResponse returns the new player id and the current standings.
type RegisterResponse struct {
	PlayerID    int64              `json:"playerId"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

func handleRegister(logger *slog.Logger, store Store, sess *Session, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, errGeneric)
			return
		}
		req.Org = strings.TrimSpace(req.Org)
		req.Name = strings.TrimSpace(req.Name)
		req.Designation = strings.TrimSpace(req.Designation)

		sess.mu.Lock()
		if sess.eventID == 0 {
			sess.mu.Unlock()
			writeError(w, http.StatusConflict, errNoEvent)
			return
		}
		eventID := sess.eventID

		// First attempt only: the same (org, name, designation) tuple
		// may register once per event.
		_, err := store.FindPlayer(r.Context(), eventID, req.Org, req.Name, req.Designation)
		if err == nil {
			sess.mu.Unlock()
			writeError(w, http.StatusConflict, errAlreadyPlayed)
			return
		}
		if !errors.Is(err, ErrNotFound) {
			sess.mu.Unlock()
			logger.Error("checking existing player", "error", err)
			writeError(w, http.StatusInternalServerError, errDB)
			return
		}

		id, err := store.InsertPlayer(r.Context(), eventID, req.Org, req.Name, req.Designation, time.Now().UnixMilli())
		if err != nil {
			sess.mu.Unlock()
			logger.Error("inserting player", "error", err)
			writeError(w, http.StatusInternalServerError, errDB)
			return
		}

		p := &sessionPlayer{
			ID:          id,
			EventID:     eventID,
			Org:         req.Org,
			Name:        req.Name,
			Designation: req.Designation,
			Answers:     []AnswerRecord{},
		}
		sess.players[id] = p
		board := sess.leaderboardLocked()
		view := p.view()
		sess.mu.Unlock()

		writeJSON(w, http.StatusOK, RegisterResponse{PlayerID: id, Leaderboard: board})

		broker.Publish(Update{
			Type:        "playerRegistered",
			Player:      view,
			Leaderboard: board,
		})
	}
}
