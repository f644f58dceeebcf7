package collections

import (
	"encoding/json"
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

// ReadJSONField decodes a json field into dst. A field that was never set
// (empty or null) leaves dst untouched.
func ReadJSONField(rec *core.Record, key string, dst any) error {
	raw := strings.TrimSpace(rec.GetString(key))
	if raw == "" || raw == "null" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
