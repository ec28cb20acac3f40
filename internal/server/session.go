package server

import "sync"

// AnswerRecord is one answered question as accumulated in session state
// and echoed in broadcast payloads.
type AnswerRecord struct {
	QIndex       int    `json:"qIndex"`
	Question     string `json:"question"`
	ChosenOption string `json:"chosenOption"`
	Correct      bool   `json:"correct"`
}

// sessionPlayer is the live in-memory mirror of a player row for the
// current event, including the answers given so far.
type sessionPlayer struct {
	ID          int64
	EventID     int64
	Org         string
	Name        string
	Designation string
	Score       int
	Finished    bool
	FinishTime  int64 // unix ms, 0 when not finished
	Answers     []AnswerRecord
}

// PlayerView is the JSON projection of a session player used in
// broadcast payloads.
type PlayerView struct {
	ID          int64          `json:"id"`
	EventID     int64          `json:"event_id"`
	Org         string         `json:"org"`
	Name        string         `json:"name"`
	Designation string         `json:"designation"`
	Score       int            `json:"score"`
	Finished    bool           `json:"finished"`
	FinishTime  *int64         `json:"finishTime"`
	Answers     []AnswerRecord `json:"answers"`
}

func (p *sessionPlayer) view() *PlayerView {
	v := &PlayerView{
		ID:          p.ID,
		EventID:     p.EventID,
		Org:         p.Org,
		Name:        p.Name,
		Designation: p.Designation,
		Score:       p.Score,
		Finished:    p.Finished,
		Answers:     append([]AnswerRecord{}, p.Answers...),
	}
	if p.FinishTime != 0 {
		ft := p.FinishTime
		v.FinishTime = &ft
	}
	return v
}

// Session is the authoritative holder of process-wide quiz state: the
// current event pointer and the live player records for that event.
// Handlers hold mu across the whole mutation (session plus store) so
// each request runs as one serialized step.
type Session struct {
	mu        sync.Mutex
	eventID   int64 // 0 when no event exists
	eventName string
	players   map[int64]*sessionPlayer
}

func NewSession() *Session {
	return &Session{players: make(map[int64]*sessionPlayer)}
}

// setEventLocked switches the current event and discards all session
// players. Session state only ever describes the current event.
func (s *Session) setEventLocked(id int64, name string) {
	s.eventID = id
	s.eventName = name
	s.players = make(map[int64]*sessionPlayer)
}

// adoptEventLocked moves the pointer without clearing players. Used at
// boot and by the self-healing read path when the pointer is merely
// refreshed, not switched.
func (s *Session) adoptEventLocked(id int64, name string) {
	s.eventID = id
	s.eventName = name
}

func (s *Session) clearEventLocked() {
	s.eventID = 0
	s.eventName = ""
	s.players = make(map[int64]*sessionPlayer)
}

// dropEventPlayersLocked removes session records belonging to eventID.
func (s *Session) dropEventPlayersLocked(eventID int64) {
	for id, p := range s.players {
		if p.EventID == eventID {
			delete(s.players, id)
		}
	}
}

// SetCurrentEvent is the exported form used at boot.
func (s *Session) SetCurrentEvent(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adoptEventLocked(id, name)
}

func (s *Session) leaderboardLocked() []LeaderboardEntry {
	list := make([]*sessionPlayer, 0, len(s.players))
	for _, p := range s.players {
		list = append(list, p)
	}
	return buildLeaderboard(list)
}
