package server

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const defaultEventName = "Event 1"

// EnsureEvent points the session at the newest event, creating the
// default event first when none exist. Called once at boot.
func EnsureEvent(ctx context.Context, logger *slog.Logger, store Store, sess *Session) error {
	ev, err := store.LatestEvent(ctx)
	if errors.Is(err, ErrNotFound) {
		id, err := store.CreateEvent(ctx, defaultEventName, time.Now().UnixMilli())
		if err != nil {
			return err
		}
		sess.SetCurrentEvent(id, defaultEventName)
		logger.Info("created default event", "id", id, "name", defaultEventName)
		return nil
	}
	if err != nil {
		return err
	}

	sess.SetCurrentEvent(ev.ID, ev.Name)
	logger.Info("current event", "id", ev.ID, "name", ev.Name)
	return nil
}
