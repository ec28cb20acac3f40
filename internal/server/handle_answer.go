package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// AnswerRequest is the body for POST /api/players/{playerID}/answers.
// The server records the client-reported correctness and score as-is;
// it does not hold the question bank and cannot recheck them.
type AnswerRequest struct {
	QIndex       int    `json:"qIndex"`
	Question     string `json:"question"`
	ChosenOption string `json:"chosenOption"`
	Correct      bool   `json:"correct"`
	NewScore     int    `json:"newScore"`
}

// AnswerResponse carries the standings after the answer was applied.
type AnswerResponse struct {
	OK          bool               `json:"ok"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

func handleAnswer(logger *slog.Logger, store Store, sess *Session, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, err := strconv.ParseInt(chi.URLParam(r, "playerID"), 10, 64)
		if err != nil || playerID <= 0 {
			writeError(w, http.StatusBadRequest, errNoID)
			return
		}

		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, errGeneric)
			return
		}

		sess.mu.Lock()
		p, ok := sess.players[playerID]
		if !ok || p.Finished {
			// Unknown or finished players are a silent no-op.
			board := sess.leaderboardLocked()
			sess.mu.Unlock()
			writeJSON(w, http.StatusOK, AnswerResponse{OK: true, Leaderboard: board})
			return
		}

		rec := AnswerRecord{
			QIndex:       req.QIndex,
			Question:     req.Question,
			ChosenOption: req.ChosenOption,
			Correct:      req.Correct,
		}
		p.Score = req.NewScore
		p.Answers = append(p.Answers, rec)

		now := time.Now().UnixMilli()
		if err := store.InsertAnswer(r.Context(), Answer{
			EventID:      p.EventID,
			PlayerID:     playerID,
			QIndex:       req.QIndex,
			Question:     req.Question,
			ChosenOption: req.ChosenOption,
			Correct:      req.Correct,
			CreatedAt:    now,
		}); err != nil {
			sess.mu.Unlock()
			logger.Error("inserting answer", "player_id", playerID, "error", err)
			writeError(w, http.StatusInternalServerError, errDB)
			return
		}
		if err := store.UpdatePlayerScore(r.Context(), playerID, req.NewScore); err != nil {
			sess.mu.Unlock()
			logger.Error("updating player score", "player_id", playerID, "error", err)
			writeError(w, http.StatusInternalServerError, errDB)
			return
		}

		board := sess.leaderboardLocked()
		view := p.view()
		sess.mu.Unlock()

		writeJSON(w, http.StatusOK, AnswerResponse{OK: true, Leaderboard: board})

		broker.Publish(Update{
			Type:        "answer",
			Player:      view,
			LastAnswer:  &rec,
			Leaderboard: board,
		})
	}
}
