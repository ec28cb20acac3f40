package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// FinishResponse tells the player where they placed.
type FinishResponse struct {
	Rank        *int               `json:"rank"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

func handleFinish(logger *slog.Logger, store Store, sess *Session, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, err := strconv.ParseInt(chi.URLParam(r, "playerID"), 10, 64)
		if err != nil || playerID <= 0 {
			writeError(w, http.StatusBadRequest, errNoID)
			return
		}

		sess.mu.Lock()
		p, ok := sess.players[playerID]
		if !ok {
			sess.mu.Unlock()
			writeError(w, http.StatusNotFound, errGeneric)
			return
		}

		// One-way latch: only the first finish records the time.
		if !p.Finished {
			p.Finished = true
			p.FinishTime = time.Now().UnixMilli()
			if err := store.FinishPlayer(r.Context(), playerID, p.FinishTime); err != nil {
				sess.mu.Unlock()
				logger.Error("finishing player", "player_id", playerID, "error", err)
				writeError(w, http.StatusInternalServerError, errDB)
				return
			}
		}

		board := sess.leaderboardLocked()
		view := p.view()
		name, org := p.Name, p.Org
		sess.mu.Unlock()

		var rank *int
		for i := range board {
			if board[i].Name == name && board[i].Org == org {
				rank = &board[i].Rank
				break
			}
		}

		writeJSON(w, http.StatusOK, FinishResponse{Rank: rank, Leaderboard: board})

		broker.Publish(Update{
			Type:        "finished",
			Player:      view,
			Leaderboard: board,
		})
	}
}
