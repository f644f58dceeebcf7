package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/logger"
)

// seedLookups are the default reference values per lookup collection.
var seedLookups = map[string][]string{
	Brands:   {"Denim Co", "Urban Fit", "Classic Line"},
	Colors:   {"Red", "Blue", "Beige", "White", "Black", "Navy", "Grey", "Green", "Brown", "Cream", "Maroon", "Olive", "Charcoal"},
	Fabrics:  {"Denim", "Twill", "Cotton Stretch", "Corduroy"},
	Patterns: {"Slim Fit", "Regular Fit", "Straight", "Cargo"},
}

// Seed fills each empty lookup collection with its default values. It is safe
// to call on every startup because collections that already hold records are
// left alone.
func Seed(app core.App, log *logger.Logger) error {
	for _, kind := range LookupKinds {
		col, err := app.FindCollectionByNameOrId(kind)
		if err != nil {
			return fmt.Errorf("seed: could not find %s collection: %w", kind, err)
		}

		total, err := app.CountRecords(col)
		if err != nil {
			return fmt.Errorf("seed: could not count %s: %w", kind, err)
		}
		if total > 0 {
			continue
		}

		log.Info("seed: collection is empty, inserting defaults", "collection", kind)
		for _, name := range seedLookups[kind] {
			r := core.NewRecord(col)
			r.Set("name", name)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("seed: could not save %s %q: %w", kind, name, err)
			}
		}
	}
	return nil
}
