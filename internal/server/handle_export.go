package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Score deltas applied per answer when recomputing the cumulative
// score from the answer log.
const (
	correctDelta = 5
	wrongDelta   = -2
)

var csvHeader = []string{
	"event_id",
	"event_name",
	"player_id",
	"org",
	"name",
	"designation",
	"question_no",
	"question_text",
	"chosen_option",
	"correct(Yes/No)",
	"score_delta(+5/-2)",
	"cumulative_score",
}

func handleExportCSV(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
		if err != nil || eventID <= 0 {
			writeError(w, http.StatusBadRequest, errNoID)
			return
		}

		eventName, err := store.EventName(r.Context(), eventID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, errGeneric)
			return
		}
		if err != nil {
			logger.Error("loading event for export", "event_id", eventID, "error", err)
			writeError(w, http.StatusInternalServerError, errDB)
			return
		}

		players, err := store.PlayersByEvent(r.Context(), eventID)
		if err != nil {
			logger.Error("loading players for export", "event_id", eventID, "error", err)
			writeError(w, http.StatusInternalServerError, errDB)
			return
		}

		answers, err := store.AnswersByEvent(r.Context(), eventID)
		if err != nil {
			logger.Error("loading answers for export", "event_id", eventID, "error", err)
			writeError(w, http.StatusInternalServerError, errDB)
			return
		}

		csv := buildResultsCSV(eventName, players, answers)

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="event_%d_results.csv"`, eventID))
		w.Write([]byte(csv))
	}
}

// buildResultsCSV renders one row per (player, answer) pair with a
// cumulative score recomputed by walking the player's answers in
// q_index order. Players without answers get a single row carrying
// their stored score. Fields are always quote-wrapped, lines end in
// CRLF, which is what the spreadsheet import on the admin side expects.
func buildResultsCSV(eventName string, players []Player, answers []Answer) string {
	byPlayer := make(map[int64][]Answer)
	for _, a := range answers {
		byPlayer[a.PlayerID] = append(byPlayer[a.PlayerID], a)
	}

	lines := []string{strings.Join(csvHeader, ",")}

	for _, p := range players {
		ans := byPlayer[p.ID]
		sort.Slice(ans, func(i, j int) bool { return ans[i].QIndex < ans[j].QIndex })

		if len(ans) == 0 {
			lines = append(lines, strings.Join([]string{
				csvField(strconv.FormatInt(p.EventID, 10)),
				csvField(eventName),
				csvField(strconv.FormatInt(p.ID, 10)),
				csvField(p.Org),
				csvField(p.Name),
				csvField(p.Designation),
				"",
				"",
				"",
				"",
				"",
				csvField(strconv.Itoa(p.Score)),
			}, ","))
			continue
		}

		cumulative := 0
		for _, a := range ans {
			delta := wrongDelta
			correct := "No"
			if a.Correct {
				delta = correctDelta
				correct = "Yes"
			}
			cumulative += delta
			lines = append(lines, strings.Join([]string{
				csvField(strconv.FormatInt(p.EventID, 10)),
				csvField(eventName),
				csvField(strconv.FormatInt(p.ID, 10)),
				csvField(p.Org),
				csvField(p.Name),
				csvField(p.Designation),
				csvField(strconv.Itoa(a.QIndex + 1)),
				csvField(a.Question),
				csvField(a.ChosenOption),
				csvField(correct),
				csvField(strconv.Itoa(delta)),
				csvField(strconv.Itoa(cumulative)),
			}, ","))
		}
	}

	return strings.Join(lines, "\r\n")
}

// csvField quote-wraps v and doubles any internal quotes.
func csvField(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
