package server

import "sort"

// LeaderboardEntry is one ranked row of the derived leaderboard view.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	Org         string `json:"org"`
	Designation string `json:"designation"`
	Score       int    `json:"score"`
	Finished    bool   `json:"finished"`
}

// buildLeaderboard ranks players by score descending. Ties break on the
// earlier finish time, but only when both players have one; a finished
// vs unfinished tie keeps encounter order.
func buildLeaderboard(players []*sessionPlayer) []LeaderboardEntry {
	sorted := append([]*sessionPlayer{}, players...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.FinishTime != 0 && b.FinishTime != 0 {
			return a.FinishTime < b.FinishTime
		}
		return false
	})

	board := make([]LeaderboardEntry, len(sorted))
	for i, p := range sorted {
		board[i] = LeaderboardEntry{
			Rank:        i + 1,
			Name:        p.Name,
			Org:         p.Org,
			Designation: p.Designation,
			Score:       p.Score,
			Finished:    p.Finished,
		}
	}
	return board
}
