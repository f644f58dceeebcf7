package models

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// ApplyPatch overlays the top-level keys of a JSON object onto dst, like a
// document store's $set.
func ApplyPatch(dst any, patch []byte) error {
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("patch: destination must be a non-nil pointer, got %T", dst)
	}

	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(patch, &overlay); err != nil {
		return fmt.Errorf("patch: %w", err)
	}

	current, err := json.Marshal(dst)
	if err != nil {
		return fmt.Errorf("patch: encode current: %w", err)
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(current, &merged); err != nil {
		return fmt.Errorf("patch: decode current: %w", err)
	}
	for k, v := range overlay {
		merged[k] = v
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("patch: encode merged: %w", err)
	}
	// Decode into a zero value so nothing from the old slices survives.
	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(out, fresh.Interface()); err != nil {
		return fmt.Errorf("patch: %w", err)
	}
	target.Elem().Set(fresh.Elem())
	return nil
}
