package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/collections"
	"factoryfloor/models"
	"factoryfloor/services"
	"factoryfloor/store"
)

// lookupNoun is the singular used in response keys and messages.
var lookupNoun = map[string]string{
	collections.Brands:   "brand",
	collections.Colors:   "color",
	collections.Fabrics:  "fabric",
	collections.Patterns: "pattern",
}

func lookupSubject(kind string) string {
	n := lookupNoun[kind]
	if n == "" {
		return "Entry"
	}
	return strings.ToUpper(n[:1]) + n[1:]
}

// withSwatch fills the display colour for color entries.
func withSwatch(kind string, lk *models.Lookup) {
	if kind == collections.Colors {
		lk.Swatch = services.ShadeSwatch(lk.Name)
	}
}

func decodeLookupInput(e *core.RequestEvent) (models.LookupInput, error) {
	body, err := readBody(e)
	if err != nil {
		return models.LookupInput{}, err
	}
	var in models.LookupInput
	if err := json.Unmarshal(body, &in); err != nil {
		return models.LookupInput{}, store.Invalid(err)
	}
	return in, nil
}

// HandleLookupList returns the entries of one lookup kind sorted by name.
func HandleLookupList(d *Deps, kind string) func(*core.RequestEvent) error {
	repo := d.Lookups[kind]
	return func(e *core.RequestEvent) error {
		items, err := repo.List(e.Request.Context())
		if err != nil {
			return fail(e, d.Log, lookupSubject(kind), err)
		}
		for i := range items {
			withSwatch(kind, &items[i])
		}
		return ok(e, http.StatusOK, map[string]any{kind: items})
	}
}

// HandleLookupCreate adds an entry; a taken name is rejected with 400.
func HandleLookupCreate(d *Deps, kind string) func(*core.RequestEvent) error {
	repo := d.Lookups[kind]
	return func(e *core.RequestEvent) error {
		subject := lookupSubject(kind)
		in, err := decodeLookupInput(e)
		if err != nil {
			return fail(e, d.Log, subject, err)
		}

		lk, err := repo.Create(e.Request.Context(), in)
		if err != nil {
			return fail(e, d.Log, subject, err)
		}
		withSwatch(kind, lk)

		_ = SetToast(e, "success", subject+" added successfully")
		return ok(e, http.StatusCreated, map[string]any{
			"id":             lk.ID,
			lookupNoun[kind]: lk,
		})
	}
}

func HandleLookupUpdate(d *Deps, kind string) func(*core.RequestEvent) error {
	repo := d.Lookups[kind]
	return func(e *core.RequestEvent) error {
		subject := lookupSubject(kind)
		in, err := decodeLookupInput(e)
		if err != nil {
			return fail(e, d.Log, subject, err)
		}

		lk, err := repo.Update(e.Request.Context(), e.Request.PathValue("id"), in)
		if err != nil {
			return fail(e, d.Log, subject, err)
		}
		withSwatch(kind, lk)

		return ok(e, http.StatusOK, map[string]any{
			lookupNoun[kind]: lk,
			"message":        subject + " updated successfully",
		})
	}
}

func HandleLookupDelete(d *Deps, kind string) func(*core.RequestEvent) error {
	repo := d.Lookups[kind]
	return func(e *core.RequestEvent) error {
		subject := lookupSubject(kind)
		if err := repo.Delete(e.Request.Context(), e.Request.PathValue("id")); err != nil {
			return fail(e, d.Log, subject, err)
		}
		return ok(e, http.StatusOK, map[string]any{"message": subject + " deleted successfully"})
	}
}
