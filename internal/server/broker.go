package server

import (
	"encoding/json"
	"sync"
)

// Update is the payload fanned out to every connected viewer after a
// mutating action. Type is one of eventChanged, playerRegistered,
// answer, finished; a fresh leaderboard always rides along.
type Update struct {
	Type             string             `json:"type"`
	CurrentEventID   *int64             `json:"currentEventId,omitempty"`
	CurrentEventName *string            `json:"currentEventName,omitempty"`
	Player           *PlayerView        `json:"player,omitempty"`
	LastAnswer       *AnswerRecord      `json:"lastAnswer,omitempty"`
	Leaderboard      []LeaderboardEntry `json:"leaderboard"`
}

// Broker is an in-process pub/sub fanning updates out to all connected
// viewers. Delivery is best effort: slow subscribers are dropped and
// clients self-heal on the next event-info pull.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[chan []byte]struct{})}
}

// Subscribe returns a channel receiving JSON-encoded updates.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

// Publish sends an update to every subscriber.
func (b *Broker) Publish(u Update) {
	data, _ := json.Marshal(u)
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
