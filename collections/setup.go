package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/logger"
)

// Collection names.
const (
	Lots     = "lots"
	JobCards = "jobcards"
	Brands   = "brands"
	Colors   = "colors"
	Fabrics  = "fabrics"
	Patterns = "patterns"
	Workers  = "workers"
)

// LookupKinds are the collections that hold plain {name} entries.
var LookupKinds = []string{Brands, Colors, Fabrics, Patterns}

// Setup programmatically creates/ensures every factory collection exists.
// Lots and job cards are joined by lot_number only; nothing in the schema
// ties them together.
func Setup(app core.App, log *logger.Logger) error {
	_, err := ensureCollection(app, log, Lots, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "lot_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "date"})
		c.Fields.Add(&core.TextField{Name: "fabric"})
		c.Fields.Add(&core.TextField{Name: "pattern"})
		c.Fields.Add(&core.TextField{Name: "brand"})
		c.Fields.Add(&core.JSONField{Name: "ratios"})
		c.Fields.Add(&core.JSONField{Name: "production_data"})
		c.Fields.Add(&core.JSONField{Name: "tukda"})
		c.Fields.Add(&core.NumberField{Name: "total_meter"})
		c.Fields.Add(&core.NumberField{Name: "total_pieces"})
		c.Fields.Add(&core.NumberField{Name: "total_pieces_with_tukda"})
		c.Fields.Add(&core.NumberField{Name: "average"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		// Lookup speed only: duplicate lot numbers are allowed.
		c.AddIndex("idx_lots_lot_number", false, "lot_number", "")
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, log, JobCards, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "lot_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "date"})
		c.Fields.Add(&core.TextField{Name: "brand"})
		c.Fields.Add(&core.JSONField{Name: "ratios"})
		c.Fields.Add(&core.JSONField{Name: "production_data"})
		c.Fields.Add(&core.TextField{Name: "fly_width"})
		c.Fields.Add(&core.JSONField{Name: "additional_info"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_jobcards_lot_number", false, "lot_number", "")
	})
	if err != nil {
		return err
	}

	for _, kind := range LookupKinds {
		_, err = ensureCollection(app, log, kind, func(c *core.Collection) {
			c.Fields.Add(&core.TextField{Name: "name", Required: true})
			c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
			c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		})
		if err != nil {
			return err
		}
	}

	_, err = ensureCollection(app, log, Workers, func(c *core.Collection) {
		c.Fields.Add(&core.NumberField{Name: "worker_id", Required: true, OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "worker_full_name", Required: true})
		c.Fields.Add(&core.JSONField{Name: "profile"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
	return err
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app core.App, log *logger.Logger, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Debug("collection already exists, skipping creation", "collection", name)
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("setup: create collection %q: %w", name, err)
	}

	log.Info("created collection", "collection", name, "id", collection.Id)
	return collection, nil
}
