package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, db *sql.DB, store Store, sess *Session, spaDir string) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("CyberSnake API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	// Viewer routes.
	r.Get("/api/event", handleEventInfo(logger, store, sess))
	r.Get("/api/events/{eventID}/results", handleEventResults(logger, store))
	r.Get("/api/stream", handleStream(broker))
	r.Get("/ws/stream", handleWSStream(logger, broker))

	// Player routes.
	r.Post("/api/players", handleRegister(logger, store, sess, broker))
	r.Post("/api/players/{playerID}/answers", handleAnswer(logger, store, sess, broker))
	r.Post("/api/players/{playerID}/finish", handleFinish(logger, store, sess, broker))

	// Admin auth.
	r.Post("/api/admin/login", handleAdminLogin(db))
	r.Post("/api/admin/logout", handleAdminLogout(db))
	r.Get("/api/admin/me", handleAdminMe(db))

	// Admin event management.
	r.Route("/api/admin/events", func(r chi.Router) {
		r.Use(adminAuthMiddleware(db))
		r.Post("/", handleCreateEvent(logger, store, sess, broker))
		r.Delete("/{eventID}", handleDeleteEvent(logger, store, sess, broker))
		r.Get("/{eventID}/export.csv", handleExportCSV(logger, store))
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
