package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCredentialGate_LoginLogout(t *testing.T) {
	g := NewCredentialGate("admin", "admin123")

	rec := httptest.NewRecorder()
	if g.Login(rec, "admin", "wrong") {
		t.Fatal("login with wrong password should fail")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("failed login must not set a cookie")
	}

	rec = httptest.NewRecorder()
	if !g.Login(rec, "admin", "admin123") {
		t.Fatal("login with configured credentials should succeed")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != "true" {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/lots", nil)
	req.AddCookie(cookies[0])
	if !g.IsAuthenticated(req) {
		t.Error("request carrying the flag should be authenticated")
	}

	rec = httptest.NewRecorder()
	g.Logout(rec)
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Errorf("logout should expire the cookie, got %+v", cleared)
	}
}

func TestCredentialGate_IsAuthenticated(t *testing.T) {
	g := NewCredentialGate("a", "b")
	tests := []struct {
		name   string
		cookie *http.Cookie
		want   bool
	}{
		{"no cookie", nil, false},
		{"false flag", &http.Cookie{Name: CookieName, Value: "false"}, false},
		{"true flag", &http.Cookie{Name: CookieName, Value: "true"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if got := g.IsAuthenticated(req); got != tt.want {
				t.Errorf("IsAuthenticated = %v, want %v", got, tt.want)
			}
		})
	}
}
