package services

import "strings"

const (
	swatchUnknown = "#e0e0e0"
	swatchEmpty   = "#e8e8e8"
)

var swatchHex = map[string]string{
	"red":       "#e53935",
	"blue":      "#1e88e5",
	"beige":     "#f5f5dc",
	"white":     "#ffffff",
	"black":     "#212121",
	"navy":      "#001f3f",
	"grey":      "#9e9e9e",
	"gray":      "#9e9e9e",
	"green":     "#43a047",
	"yellow":    "#fdd835",
	"orange":    "#fb8c00",
	"pink":      "#ec407a",
	"purple":    "#8e24aa",
	"brown":     "#6d4c41",
	"cream":     "#fffdd0",
	"maroon":    "#880e4f",
	"gold":      "#ffd700",
	"silver":    "#c0c0c0",
	"lime":      "#c6e048",
	"teal":      "#00897b",
	"olive":     "#808000",
	"coral":     "#ff7f50",
	"salmon":    "#fa8072",
	"lavender":  "#e6e6fa",
	"mint":      "#98ff98",
	"skyblue":   "#87ceeb",
	"lightblue": "#add8e6",
	"darkblue":  "#00008b",
	"peach":     "#ffcba4",
	"ivory":     "#fffff0",
	"charcoal":  "#36454f",
}

// ShadeSwatch returns the hex colour shown next to a shade name. Names are
// matched case-insensitively with whitespace removed ("Sky Blue" finds
// skyblue).
func ShadeSwatch(name string) string {
	if strings.TrimSpace(name) == "" {
		return swatchEmpty
	}
	key := strings.ToLower(strings.Join(strings.Fields(name), ""))
	if hex, ok := swatchHex[key]; ok {
		return hex
	}
	return swatchUnknown
}
