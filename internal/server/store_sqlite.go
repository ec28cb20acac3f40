package server

import (
	"context"
	"database/sql"
	"errors"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at FROM events ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Name, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *SQLiteStore) LatestEvent(ctx context.Context) (Event, error) {
	var e Event
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM events ORDER BY id DESC LIMIT 1
	`).Scan(&e.ID, &e.Name, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return e, ErrNotFound
	}
	return e, err
}

func (s *SQLiteStore) EventName(ctx context.Context, id int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM events WHERE id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return name, err
}

func (s *SQLiteStore) CreateEvent(ctx context.Context, name string, createdAt int64) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO events (name, created_at) VALUES (?, ?)
		RETURNING id
	`, name, createdAt).Scan(&id)
	return id, err
}

func (s *SQLiteStore) DeleteEventData(ctx context.Context, id int64) error {
	// Referential cleanup is manual: answers first, then players, then
	// the event itself.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM answers WHERE event_id = ?`, id); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE event_id = ?`, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) FindPlayer(ctx context.Context, eventID int64, org, name, designation string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM players
		WHERE event_id = ? AND org = ? AND name = ? AND designation = ?
		LIMIT 1
	`, eventID, org, name, designation).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

func (s *SQLiteStore) InsertPlayer(ctx context.Context, eventID int64, org, name, designation string, createdAt int64) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO players (event_id, org, name, designation, score, finished, finish_time, created_at)
		VALUES (?, ?, ?, ?, 0, 0, NULL, ?)
		RETURNING id
	`, eventID, org, name, designation, createdAt).Scan(&id)
	return id, err
}

func (s *SQLiteStore) UpdatePlayerScore(ctx context.Context, playerID int64, score int) error {
	_, err := s.db.ExecContext(ctx, `UPDATE players SET score = ? WHERE id = ?`, score, playerID)
	return err
}

func (s *SQLiteStore) FinishPlayer(ctx context.Context, playerID, finishTime int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE players SET finished = 1, finish_time = ? WHERE id = ?
	`, finishTime, playerID)
	return err
}

func (s *SQLiteStore) InsertAnswer(ctx context.Context, a Answer) error {
	correct := 0
	if a.Correct {
		correct = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO answers (event_id, player_id, q_index, question, chosen_option, correct, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.EventID, a.PlayerID, a.QIndex, a.Question, a.ChosenOption, correct, a.CreatedAt)
	return err
}

func (s *SQLiteStore) PlayersByEvent(ctx context.Context, eventID int64) ([]Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_id, org, name, designation, score, finished, finish_time, created_at
		FROM players WHERE event_id = ?
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		var p Player
		var finished int
		var finishTime sql.NullInt64
		if err := rows.Scan(&p.ID, &p.EventID, &p.Org, &p.Name, &p.Designation, &p.Score, &finished, &finishTime, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Finished = finished != 0
		if finishTime.Valid {
			ft := finishTime.Int64
			p.FinishTime = &ft
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *SQLiteStore) AnswersByEvent(ctx context.Context, eventID int64) ([]Answer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_id, player_id, q_index, question, chosen_option, correct, created_at
		FROM answers WHERE event_id = ?
		ORDER BY player_id, q_index
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := []Answer{}
	for rows.Next() {
		var a Answer
		var correct int
		if err := rows.Scan(&a.ID, &a.EventID, &a.PlayerID, &a.QIndex, &a.Question, &a.ChosenOption, &correct, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Correct = correct != 0
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
