package models

import (
	"encoding/json"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"
)

// Lookup is a named reference entry: a brand, color, fabric or pattern.
type Lookup struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Swatch    string    `json:"swatch,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LookupInput is the create/rename payload.
type LookupInput struct {
	Name string `json:"name"`
}

func (in LookupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
	)
}

// Worker is a person job card rows can be assigned to. WorkerID is handed
// out on creation and never changes; Profile carries any extra fields the
// front end sends (phone, address, ...), flattened into the JSON object.
type Worker struct {
	ID        string         `json:"_id"`
	WorkerID  int            `json:"worker_id"`
	FullName  string         `json:"worker_full_name"`
	Profile   map[string]any `json:"-"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// reservedWorkerKeys never end up in Profile.
var reservedWorkerKeys = map[string]bool{
	"_id":              true,
	"id":               true,
	"worker_id":        true,
	"worker_full_name": true,
	"createdAt":        true,
	"updatedAt":        true,
}

func (w Worker) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(w.Profile)+5)
	for k, v := range w.Profile {
		out[k] = v
	}
	out["_id"] = w.ID
	out["worker_id"] = w.WorkerID
	out["worker_full_name"] = w.FullName
	out["createdAt"] = w.CreatedAt
	out["updatedAt"] = w.UpdatedAt
	return json.Marshal(out)
}

func (w *Worker) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	w.ID = cast.ToString(raw["_id"])
	w.WorkerID = int(looseFloat(raw["worker_id"]))
	w.FullName = strings.TrimSpace(cast.ToString(raw["worker_full_name"]))
	w.CreatedAt = cast.ToTime(raw["createdAt"])
	w.UpdatedAt = cast.ToTime(raw["updatedAt"])
	w.Profile = make(map[string]any)
	for k, v := range raw {
		if !reservedWorkerKeys[k] {
			w.Profile[k] = v
		}
	}
	return nil
}

func (w Worker) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.FullName, validation.Required, validation.Length(1, 200)),
	)
}
