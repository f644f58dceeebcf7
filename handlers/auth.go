package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/store"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin checks the posted credentials against the gate and sets the
// client flag on success.
func HandleLogin(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body, err := readBody(e)
		if err != nil {
			return fail(e, d.Log, "Login", err)
		}
		var req loginRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return fail(e, d.Log, "Login", store.Invalid(err))
		}

		if !d.Gate.Login(e.Response, req.Username, req.Password) {
			d.Log.Info("login rejected", "username", req.Username)
			return ErrorJSON(e, http.StatusUnauthorized, "Invalid username or password")
		}
		_ = SetToast(e, "success", "Logged in")
		return ok(e, http.StatusOK, nil)
	}
}

func HandleLogout(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		d.Gate.Logout(e.Response)
		return ok(e, http.StatusOK, nil)
	}
}

// HandleSession reports whether the request carries the login flag.
func HandleSession(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return ok(e, http.StatusOK, map[string]any{"authenticated": d.Gate.IsAuthenticated(e.Request)})
	}
}

// RequireLogin rejects requests without the login flag with 401.
func RequireLogin(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if !d.Gate.IsAuthenticated(e.Request) {
			return ErrorJSON(e, http.StatusUnauthorized, "Please log in")
		}
		return e.Next()
	}
}
