package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/logger"
	"factoryfloor/store"
)

func parseToast(t *testing.T, rec *httptest.ResponseRecorder) (map[string]json.RawMessage, map[string]string) {
	t.Helper()
	trigger := rec.Header().Get("HX-Trigger")
	if trigger == "" {
		t.Fatal("expected HX-Trigger header to be set")
	}
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trigger), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	var toast map[string]string
	if err := json.Unmarshal(parsed["showToast"], &toast); err != nil {
		t.Fatalf("showToast is not valid JSON: %v", err)
	}
	return parsed, toast
}

func TestSetToast_Basic(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec

	if err := SetToast(e, "success", `Lot "A1" saved`); err != nil {
		t.Fatalf("SetToast error: %v", err)
	}

	_, toast := parseToast(t, rec)
	if toast["message"] != `Lot "A1" saved` || toast["type"] != "success" {
		t.Errorf("unexpected toast: %v", toast)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "flash_toast" {
		t.Errorf("expected flash_toast cookie, got %+v", cookies)
	}
}

func TestSetToast_MergesWithExisting(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec
	rec.Header().Set("HX-Trigger", `{"lotsChanged":{"lotNumber":"A1"}}`)

	_ = SetToast(e, "success", "Merged toast")

	parsed, toast := parseToast(t, rec)
	if _, ok := parsed["lotsChanged"]; !ok {
		t.Error("expected lotsChanged key to be preserved after merge")
	}
	if toast["message"] != "Merged toast" {
		t.Errorf("expected message %q, got %q", "Merged toast", toast["message"])
	}
}

func TestSetToast_OverwritesInvalidExisting(t *testing.T) {
	for _, existing := range []string{"notValidJSON", "null", `"a string"`} {
		t.Run(existing, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := &core.RequestEvent{}
			e.Response = rec
			rec.Header().Set("HX-Trigger", existing)

			_ = SetToast(e, "error", "Overwritten")

			_, toast := parseToast(t, rec)
			if toast["message"] != "Overwritten" {
				t.Errorf("unexpected toast: %v", toast)
			}
		})
	}
}

func TestErrorJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec
	e.Request = httptest.NewRequest(http.MethodGet, "/api/lots", nil)

	if err := ErrorJSON(e, http.StatusNotFound, "Lot not found"); err != nil {
		t.Fatalf("ErrorJSON returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("expected HX-Reswap: none")
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body.Success || body.Error != "Lot not found" {
		t.Errorf("unexpected body: %+v", body)
	}
	if _, toast := parseToast(t, rec); toast["type"] != "error" {
		t.Errorf("expected error toast, got %v", toast)
	}
}

func TestFail_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not found", fmt.Errorf("find lot: %w", store.ErrNotFound), http.StatusNotFound, "Lot not found"},
		{"conflict", fmt.Errorf("create: %w", store.ErrConflict), http.StatusBadRequest, "Lot already exists"},
		{"invalid", store.Invalid(errors.New("lotNumber: cannot be blank")), http.StatusBadRequest, "invalid input: lotNumber: cannot be blank"},
		{"store down", fmt.Errorf("list: %w", store.ErrStoreUnavailable), http.StatusInternalServerError, genericError},
		{"anything else", errors.New("boom"), http.StatusInternalServerError, genericError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := &core.RequestEvent{}
			e.Response = rec
			e.Request = httptest.NewRequest(http.MethodGet, "/api/lots", nil)

			_ = fail(e, logger.Nop(), "Lot", tt.err)

			if rec.Code != tt.code {
				t.Errorf("expected %d, got %d", tt.code, rec.Code)
			}
			var body map[string]any
			_ = json.Unmarshal(rec.Body.Bytes(), &body)
			if body["error"] != tt.message {
				t.Errorf("error = %v, want %q", body["error"], tt.message)
			}
		})
	}
}
