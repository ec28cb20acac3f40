package server

import (
	"net/http"
	"testing"
)

func TestHealthz(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeJSON[HealthResponse](t, w)
	if resp.SQLite != "ok" {
		t.Errorf("sqlite = %q, want ok", resp.SQLite)
	}
}
