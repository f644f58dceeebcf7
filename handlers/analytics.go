package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/services"
)

// analyticsFilter reads ?from=&to=&worker= from the query string.
func analyticsFilter(e *core.RequestEvent) services.AnalyticsFilter {
	q := e.Request.URL.Query()
	return services.AnalyticsFilter{
		From:   q.Get("from"),
		To:     q.Get("to"),
		Worker: q.Get("worker"),
	}
}

// analyticsFilename follows WorkerAnalytics[_from_to_to][_name].ext.
func analyticsFilename(f services.AnalyticsFilter, report services.AnalyticsReport, ext string) string {
	name := "WorkerAnalytics"
	if f.From != "" && f.To != "" {
		name += "_" + f.From + "_to_" + f.To
	}
	if f.Worker != "" {
		name += "_" + orDefault(report.WorkerName, "worker")
	}
	return name + "." + ext
}

// HandleWorkerAnalytics returns the pay lines and totals as JSON.
func HandleWorkerAnalytics(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		report, err := d.Analytics.Report(e.Request.Context(), analyticsFilter(e))
		if err != nil {
			return fail(e, d.Log, "Analytics", err)
		}
		return ok(e, http.StatusOK, map[string]any{
			"data":        report.Rows,
			"workerName":  report.WorkerName,
			"totalPieces": report.TotalPieces,
			"totalAmount": report.TotalAmount,
		})
	}
}

// analyticsExport runs the report for the request's filter and hands it to
// render.
func analyticsExport(d *Deps, contentType, ext string, render func(services.AnalyticsReport, services.AnalyticsFilter) ([]byte, error)) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		f := analyticsFilter(e)
		report, err := d.Analytics.Report(e.Request.Context(), f)
		if err != nil {
			return fail(e, d.Log, "Analytics", err)
		}

		data, err := render(report, f)
		if err != nil {
			d.Log.Error("analytics export failed", "format", ext, "error", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Failed to generate export file")
		}
		return download(e, contentType, analyticsFilename(f, report, ext), data)
	}
}

func HandleWorkerAnalyticsPDF(d *Deps) func(*core.RequestEvent) error {
	return analyticsExport(d, contentTypePDF, "pdf", services.GenerateWorkerReportPDF)
}

func HandleWorkerAnalyticsExcel(d *Deps) func(*core.RequestEvent) error {
	return analyticsExport(d, contentTypeXLSX, "xlsx", services.GenerateWorkerReportExcel)
}

func HandleWorkerAnalyticsCSV(d *Deps) func(*core.RequestEvent) error {
	return analyticsExport(d, contentTypeCSV, "csv", func(r services.AnalyticsReport, _ services.AnalyticsFilter) ([]byte, error) {
		return services.GenerateWorkerReportCSV(r)
	})
}
