package collections

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/logger"
)

// MigrateRowIDs gives every stored production row a rowId so job card merges
// can match rows by identity. Lots go first; a job card whose ids share
// nothing with its lot's then takes the lot's ids by position, since
// position is how the two were paired before ids existed. Safe to call on
// every startup -- records with nothing to fill are skipped.
func MigrateRowIDs(app core.App, log *logger.Logger) error {
	lotIDs := map[string][]string{}

	for _, name := range []string{Lots, JobCards} {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			return fmt.Errorf("migrate: could not find %s collection: %w", name, err)
		}

		records, err := app.FindAllRecords(col)
		if err != nil {
			return fmt.Errorf("migrate: could not query %s: %w", name, err)
		}

		updated := 0
		for _, rec := range records {
			var rows []map[string]any
			if err := ReadJSONField(rec, "production_data", &rows); err != nil {
				log.Warn("migrate: unreadable production_data", "collection", name, "id", rec.Id, "error", err)
				continue
			}
			lotNumber := rec.GetString("lot_number")

			changed := false
			if name == JobCards {
				changed = alignRowIDs(rows, lotIDs[lotNumber])
			}
			if fillRowIDs(rows) {
				changed = true
			}
			if name == Lots {
				if _, seen := lotIDs[lotNumber]; !seen {
					lotIDs[lotNumber] = rowIDs(rows)
				}
			}
			if !changed {
				continue
			}

			rec.Set("production_data", rows)
			if err := app.Save(rec); err != nil {
				log.Warn("migrate: could not save row ids", "collection", name, "id", rec.Id, "error", err)
				continue
			}
			updated++
		}
		if updated > 0 {
			log.Info("migrate: assigned row ids", "collection", name, "records", updated)
		}
	}
	return nil
}

// fillRowIDs assigns ids to rows missing one and reports whether any changed.
func fillRowIDs(rows []map[string]any) bool {
	changed := false
	for _, row := range rows {
		if rowID(row) != "" {
			continue
		}
		row["rowId"] = uuid.NewString()
		changed = true
	}
	return changed
}

// alignRowIDs copies lotIDs onto job card rows by index when none of the
// rows already carries one of the lot's ids. Rows beyond the lot keep
// whatever they have.
func alignRowIDs(rows []map[string]any, lotIDs []string) bool {
	if len(lotIDs) == 0 {
		return false
	}
	known := make(map[string]bool, len(lotIDs))
	for _, id := range lotIDs {
		known[id] = true
	}
	for _, row := range rows {
		if known[rowID(row)] {
			return false
		}
	}

	changed := false
	for i, row := range rows {
		if i >= len(lotIDs) {
			break
		}
		row["rowId"] = lotIDs[i]
		changed = true
	}
	return changed
}

func rowIDs(rows []map[string]any) []string {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = rowID(row)
	}
	return ids
}

func rowID(row map[string]any) string {
	id, _ := row["rowId"].(string)
	return id
}
