package server

import (
	"log/slog"
	"net/http"

	"nhooyr.io/websocket"
)

// handleWSStream delivers the same broadcast updates as /api/stream
// over a WebSocket, for viewers that cannot consume SSE.
func handleWSStream(logger *slog.Logger, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		// Viewers never send; CloseRead watches for the client closing.
		ctx := conn.CloseRead(r.Context())

		ch := broker.Subscribe()
		defer broker.Unsubscribe(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case data := <-ch:
				if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
					logger.Debug("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}
