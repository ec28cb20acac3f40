package server

import (
	"encoding/json"
	"testing"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Update{Type: "answer", Leaderboard: []LeaderboardEntry{}})

	select {
	case data := <-ch:
		var u Update
		if err := json.Unmarshal(data, &u); err != nil {
			t.Fatalf("unmarshal update: %v", err)
		}
		if u.Type != "answer" {
			t.Errorf("type = %q, want answer", u.Type)
		}
	default:
		t.Fatal("expected a buffered update")
	}
}

func TestBrokerSlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Overflow the subscriber buffer; Publish must not block.
	for i := 0; i < 100; i++ {
		b.Publish(Update{Type: "answer"})
	}

	if got := len(ch); got != cap(ch) {
		t.Errorf("expected full buffer of %d, got %d", cap(ch), got)
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	b.Unsubscribe(ch)

	b.Publish(Update{Type: "finished"})

	if got := len(ch); got != 0 {
		t.Errorf("expected no delivery after unsubscribe, got %d", got)
	}
}
