package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cybersnake/server/internal/database"
	"github.com/cybersnake/server/internal/migrations"
)

const (
	testAdminEmail    = "admin@cybersnake.local"
	testAdminPassword = "changeme"
)

type testEnv struct {
	t     *testing.T
	r     *chi.Mux
	db    *sql.DB
	store *SQLiteStore
	sess  *Session
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// One connection so every query sees the same in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewSQLiteStore(db)
	sess := NewSession()

	if err := EnsureEvent(ctx, logger, store, sess); err != nil {
		t.Fatalf("ensure event: %v", err)
	}
	if err := EnsureAdmin(ctx, logger, db, testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	r := chi.NewRouter()
	addRoutes(r, logger, db, store, sess, "")

	return &testEnv{t: t, r: r, db: db, store: store, sess: sess}
}

// do performs a request against the test router. A non-nil body is
// JSON-encoded.
func (e *testEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

// login authenticates as the seeded admin and returns the cookies.
func (e *testEnv) login() []*http.Cookie {
	e.t.Helper()

	w := e.do(http.MethodPost, "/api/admin/login", AdminLoginRequest{
		Email:    testAdminEmail,
		Password: testAdminPassword,
	})
	if w.Code != http.StatusOK {
		e.t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

// register adds a player to the current event and returns its id.
func (e *testEnv) register(org, name, designation string) int64 {
	e.t.Helper()

	w := e.do(http.MethodPost, "/api/players", RegisterRequest{
		Org:         org,
		Name:        name,
		Designation: designation,
	})
	if w.Code != http.StatusOK {
		e.t.Fatalf("register: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp RegisterResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		e.t.Fatalf("decode register response: %v", err)
	}
	return resp.PlayerID
}

func playerPath(id int64, action string) string {
	return fmt.Sprintf("/api/players/%d/%s", id, action)
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeJSON[map[string]string](t, w)["error"]
}
