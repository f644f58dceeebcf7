package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/logger"
	"factoryfloor/store"
)

const genericError = "Something went wrong. Please try again."

// SetToast adds a showToast event to the HX-Trigger header, keeping any
// other trigger already set, and mirrors it in a flash_toast cookie for
// clients that follow a redirect instead.
func SetToast(e *core.RequestEvent, toastType string, message string) error {
	toast := map[string]string{"message": message, "type": toastType}

	trigger := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		// A trigger that isn't a JSON object is replaced.
		if err := json.Unmarshal([]byte(existing), &trigger); err != nil || trigger == nil {
			trigger = map[string]any{}
		}
	}
	trigger["showToast"] = toast

	data, err := json.Marshal(trigger)
	if err != nil {
		return fmt.Errorf("toast: marshal HX-Trigger: %w", err)
	}
	e.Response.Header().Set("HX-Trigger", string(data))

	cookieVal, err := json.Marshal(toast)
	if err != nil {
		return fmt.Errorf("toast: marshal cookie: %w", err)
	}
	http.SetCookie(e.Response, &http.Cookie{
		Name:     "flash_toast",
		Value:    url.QueryEscape(string(cookieVal)),
		Path:     "/",
		MaxAge:   10,
		HttpOnly: false, // JS needs to read it
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ErrorJSON writes {"success": false, "error": message} with an error toast.
// HX-Reswap: none keeps an HTMX client from swapping the error body in.
func ErrorJSON(e *core.RequestEvent, statusCode int, message string) error {
	_ = SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.JSON(statusCode, map[string]any{"success": false, "error": message})
}

// fail maps a store/service error onto a status code. subject names the
// thing that was looked for ("Lot", "Brand", ...).
func fail(e *core.RequestEvent, log *logger.Logger, subject string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrorJSON(e, http.StatusNotFound, subject+" not found")
	case errors.Is(err, store.ErrConflict):
		return ErrorJSON(e, http.StatusBadRequest, subject+" already exists")
	case errors.Is(err, store.ErrInvalid):
		return ErrorJSON(e, http.StatusBadRequest, err.Error())
	}
	log.Error("request failed",
		"method", e.Request.Method,
		"path", e.Request.URL.Path,
		"error", err,
	)
	return ErrorJSON(e, http.StatusInternalServerError, genericError)
}

// ok writes a success body: {"success": true} plus fields.
func ok(e *core.RequestEvent, status int, fields map[string]any) error {
	body := map[string]any{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return e.JSON(status, body)
}
