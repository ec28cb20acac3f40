package server

import "testing"

func TestLeaderboardSortsByScore(t *testing.T) {
	board := buildLeaderboard([]*sessionPlayer{
		{Name: "Ada", Org: "Acme", Score: 3},
		{Name: "Bob", Org: "Initech", Score: 8},
		{Name: "Cho", Org: "Globex", Score: 5},
	})

	wantOrder := []string{"Bob", "Cho", "Ada"}
	for i, want := range wantOrder {
		if board[i].Name != want {
			t.Errorf("position %d = %q, want %q", i, board[i].Name, want)
		}
		if board[i].Rank != i+1 {
			t.Errorf("position %d rank = %d, want %d", i, board[i].Rank, i+1)
		}
	}
}

func TestLeaderboardTieBreaksOnFinishTime(t *testing.T) {
	board := buildLeaderboard([]*sessionPlayer{
		{Name: "Ada", Score: 10, Finished: true, FinishTime: 2000},
		{Name: "Bob", Score: 10, Finished: true, FinishTime: 1000},
	})

	if board[0].Name != "Bob" {
		t.Errorf("expected earlier finisher first, got %q", board[0].Name)
	}
	if board[0].Rank != 1 || board[1].Rank != 2 {
		t.Errorf("expected ranks 1,2, got %d,%d", board[0].Rank, board[1].Rank)
	}
}

func TestLeaderboardTieWithUnfinishedKeepsOrder(t *testing.T) {
	// A finished vs unfinished tie has no defined order beyond the
	// stable input order.
	board := buildLeaderboard([]*sessionPlayer{
		{Name: "Ada", Score: 10},
		{Name: "Bob", Score: 10, Finished: true, FinishTime: 1000},
	})

	if board[0].Name != "Ada" || board[1].Name != "Bob" {
		t.Errorf("expected stable input order, got %q,%q", board[0].Name, board[1].Name)
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	board := buildLeaderboard(nil)
	if len(board) != 0 {
		t.Errorf("expected empty board, got %d entries", len(board))
	}
}
