package server

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Event is one quiz competition instance; it scopes players and answers.
type Event struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// Player is the persisted player row.
type Player struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"event_id"`
	Org         string `json:"org"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Score       int    `json:"score"`
	Finished    bool   `json:"finished"`
	FinishTime  *int64 `json:"finish_time"`
	CreatedAt   int64  `json:"created_at"`
}

// Answer is one appended answer row; the answer log is append-only.
type Answer struct {
	ID           int64  `json:"id"`
	EventID      int64  `json:"event_id"`
	PlayerID     int64  `json:"player_id"`
	QIndex       int    `json:"q_index"`
	Question     string `json:"question"`
	ChosenOption string `json:"chosen_option"`
	Correct      bool   `json:"correct"`
	CreatedAt    int64  `json:"created_at"`
}

type Store interface {
	// ListEvents returns all events, newest first.
	ListEvents(ctx context.Context) ([]Event, error)
	// LatestEvent returns the newest event, or ErrNotFound when the
	// table is empty.
	LatestEvent(ctx context.Context) (Event, error)
	EventName(ctx context.Context, id int64) (string, error)
	CreateEvent(ctx context.Context, name string, createdAt int64) (int64, error)
	// DeleteEventData removes answers, then players, then the event row.
	// The steps are not transactional; a mid-way failure can leave
	// orphaned rows behind.
	DeleteEventData(ctx context.Context, id int64) error

	// FindPlayer returns the id of an existing player matching the
	// identity tuple within the event, or ErrNotFound.
	FindPlayer(ctx context.Context, eventID int64, org, name, designation string) (int64, error)
	InsertPlayer(ctx context.Context, eventID int64, org, name, designation string, createdAt int64) (int64, error)
	UpdatePlayerScore(ctx context.Context, playerID int64, score int) error
	FinishPlayer(ctx context.Context, playerID, finishTime int64) error

	InsertAnswer(ctx context.Context, a Answer) error

	PlayersByEvent(ctx context.Context, eventID int64) ([]Player, error)
	// AnswersByEvent returns answers ordered by player id then q_index.
	AnswersByEvent(ctx context.Context, eventID int64) ([]Answer, error)
}
