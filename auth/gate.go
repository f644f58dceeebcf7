// Package auth implements the login gate: a boolean flag held by the client
// and compared against two configured strings. It keeps people from
// wandering into the app by accident and is not a security boundary.
package auth

import (
	"net/http"
)

// CookieName is the client-held flag, the server-side twin of the
// browser's localStorage "isAuthenticated" key.
const CookieName = "isAuthenticated"

// Gate is the capability the HTTP layer needs from the login gate.
type Gate interface {
	IsAuthenticated(r *http.Request) bool
	Login(w http.ResponseWriter, username, password string) bool
	Logout(w http.ResponseWriter)
}

// CredentialGate compares against one static username/password pair.
type CredentialGate struct {
	Username string
	Password string
}

var _ Gate = (*CredentialGate)(nil)

func NewCredentialGate(username, password string) *CredentialGate {
	return &CredentialGate{Username: username, Password: password}
}

func (g *CredentialGate) IsAuthenticated(r *http.Request) bool {
	c, err := r.Cookie(CookieName)
	return err == nil && c.Value == "true"
}

// Login sets the flag when both strings match and reports whether they did.
func (g *CredentialGate) Login(w http.ResponseWriter, username, password string) bool {
	if username != g.Username || password != g.Password {
		return false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "true",
		Path:     "/",
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}

func (g *CredentialGate) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
