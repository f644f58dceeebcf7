package main

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"factoryfloor/auth"
	"factoryfloor/collections"
	"factoryfloor/config"
	"factoryfloor/handlers"
	"factoryfloor/logger"
	"factoryfloor/services"
	"factoryfloor/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}
	defer logg.Sync()

	app := pocketbase.New()
	gate := auth.NewCredentialGate(cfg.Login.Username, cfg.Login.Password)

	app.RootCmd.AddCommand(backfillCommand(app, logg))

	// Create collections, seed lookups and migrate stored rows on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := collections.Setup(app, logg); err != nil {
			return fmt.Errorf("collections setup: %w", err)
		}
		if cfg.Seed {
			if err := collections.Seed(app, logg); err != nil {
				logg.Warn("seed data failed", "error", err)
			}
		}
		if err := collections.MigrateRowIDs(app, logg); err != nil {
			logg.Warn("row id migration failed", "error", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		d := handlers.NewDeps(app, gate, logg)
		registerRoutes(se, d)
		return se.Next()
	})

	if err := app.Start(); err != nil {
		logg.Fatal("server stopped", "error", err)
	}
}

func registerRoutes(se *core.ServeEvent, d *handlers.Deps) {
	// ── Login gate (open) ────────────────────────────────────
	se.Router.POST("/api/login", handlers.HandleLogin(d))
	se.Router.POST("/api/logout", handlers.HandleLogout(d))
	se.Router.GET("/api/session", handlers.HandleSession(d))

	api := se.Router.Group("/api")
	api.BindFunc(handlers.RequireLogin(d))

	// ── Lots ─────────────────────────────────────────────────
	api.GET("/lots/export/csv", handlers.HandleLotsExportCSV(d))
	api.GET("/lots/export/excel", handlers.HandleLotsExportExcel(d))
	api.GET("/lots", handlers.HandleLotList(d))
	api.POST("/lots", handlers.HandleLotCreate(d))
	api.GET("/lots/{lotNumber}/export/pdf", handlers.HandleLotExportPDF(d))
	api.GET("/lots/{lotNumber}", handlers.HandleLotView(d))
	api.PUT("/lots/{lotNumber}", handlers.HandleLotUpdate(d))
	api.DELETE("/lots/{lotNumber}", handlers.HandleLotDelete(d))

	// ── Job cards ────────────────────────────────────────────
	api.GET("/jobcards", handlers.HandleJobCardList(d))
	api.POST("/jobcards", handlers.HandleJobCardCreate(d))
	api.GET("/jobcards/{lotNumber}/export/pdf", handlers.HandleJobCardExportPDF(d))
	api.GET("/jobcards/{lotNumber}", handlers.HandleJobCardView(d))
	api.PUT("/jobcards/{lotNumber}", handlers.HandleJobCardUpdate(d))
	api.DELETE("/jobcards/{lotNumber}", handlers.HandleJobCardDelete(d))

	// ── Lookups ──────────────────────────────────────────────
	for _, kind := range collections.LookupKinds {
		api.GET("/"+kind, handlers.HandleLookupList(d, kind))
		api.POST("/"+kind, handlers.HandleLookupCreate(d, kind))
		api.PUT("/"+kind+"/{id}", handlers.HandleLookupUpdate(d, kind))
		api.DELETE("/"+kind+"/{id}", handlers.HandleLookupDelete(d, kind))
	}

	// ── Workers ──────────────────────────────────────────────
	api.GET("/workers", handlers.HandleWorkerList(d))
	api.POST("/workers", handlers.HandleWorkerCreate(d))
	api.PUT("/workers/{id}", handlers.HandleWorkerUpdate(d))
	api.DELETE("/workers/{id}", handlers.HandleWorkerDelete(d))

	// ── Worker analytics ─────────────────────────────────────
	api.GET("/worker-analytics", handlers.HandleWorkerAnalytics(d))
	api.GET("/worker-analytics/export/pdf", handlers.HandleWorkerAnalyticsPDF(d))
	api.GET("/worker-analytics/export/excel", handlers.HandleWorkerAnalyticsExcel(d))
	api.GET("/worker-analytics/export/csv", handlers.HandleWorkerAnalyticsCSV(d))
}

// backfillCommand creates the job card of every lot that lacks one, the
// same pass the lot list performs, without starting the server.
func backfillCommand(app *pocketbase.PocketBase, logg *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-jobcards",
		Short: "Create missing job cards for every stored lot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := collections.Setup(app, logg); err != nil {
				return fmt.Errorf("collections setup: %w", err)
			}
			lots, err := store.NewLotRepository(app).List(cmd.Context())
			if err != nil {
				return err
			}
			sync := services.NewSynchronizer(store.NewJobCardRepository(app), logg)
			report := sync.Backfill(cmd.Context(), lots)
			logg.Info("backfill finished",
				"checked", report.Checked,
				"created", report.Created,
				"failed", report.Failed,
			)
			if report.Failed > 0 {
				return fmt.Errorf("%d lot(s) still without a job card", report.Failed)
			}
			return nil
		},
	}
}
