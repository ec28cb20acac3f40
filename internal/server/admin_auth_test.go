package server

import (
	"net/http"
	"testing"
)

func TestAdminLoginGoodCredentials(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodPost, "/api/admin/login", AdminLoginRequest{
		Email:    testAdminEmail,
		Password: testAdminPassword,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeJSON[AdminMeResponse](t, w)
	if resp.Email != testAdminEmail {
		t.Errorf("email = %q, want %q", resp.Email, testAdminEmail)
	}

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected admin_session cookie to be set")
	}
}

func TestAdminLoginBadPassword(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodPost, "/api/admin/login", AdminLoginRequest{
		Email:    testAdminEmail,
		Password: "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminMeRequiresSession(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodGet, "/api/admin/me", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminLogoutClearsSession(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login()

	if w := e.do(http.MethodGet, "/api/admin/me", nil, cookies...); w.Code != http.StatusOK {
		t.Fatalf("me before logout: expected 200, got %d", w.Code)
	}

	if w := e.do(http.MethodPost, "/api/admin/logout", nil, cookies...); w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	if w := e.do(http.MethodGet, "/api/admin/me", nil, cookies...); w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", w.Code)
	}
}
