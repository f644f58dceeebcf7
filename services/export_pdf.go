package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"factoryfloor/models"
)

// Every sheet lays out on a 24-column grid so the job card's operation
// columns fit across a landscape page.
const pdfGrid = 24

// pdfColumn is one column of a table: header label, grid width, alignment.
type pdfColumn struct {
	Label string
	Size  int
	Align align.Type
}

var (
	mutedColor  = &props.Color{Red: 80, Green: 80, Blue: 80}
	headerBg    = &props.Color{Red: 33, Green: 37, Blue: 41}
	summaryBg   = &props.Color{Red: 240, Green: 240, Blue: 240}
	stripeBg    = &props.Color{Red: 245, Green: 245, Blue: 245}
	footerColor = &props.Color{Red: 120, Green: 120, Blue: 120}
)

func newPDF(o orientation.Type) core.Maroto {
	cfg := config.NewBuilder().
		WithOrientation(o).
		WithPageSize(pagesize.A4).
		WithMaxGridSize(pdfGrid).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   footerColor,
		}).
		Build()
	return maroto.New(cfg)
}

func renderPDF(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateLotPDF renders a lot's cutting sheet: header, ratios, production
// rows, tukda and totals.
func GenerateLotPDF(lot models.Lot) ([]byte, error) {
	m := newPDF(orientation.Vertical)

	addTitle(m, "Lot "+lot.LotNumber, "Date: "+dash(lot.Date))
	addDetails(m, [][2]string{
		{"Brand", lot.Brand},
		{"Fabric", lot.Fabric},
		{"Pattern", lot.Pattern},
	})
	addRatios(m, lot.Ratios)

	columns := []pdfColumn{
		{"S.No", 2, align.Center},
		{"Meter", 3, align.Right},
		{"Layer", 2, align.Right},
		{"Pieces", 3, align.Right},
		{"Color", 4, align.Left},
		{"Shade", 4, align.Left},
		{"Zip Code", 3, align.Left},
		{"Thread Code", 3, align.Left},
	}
	rows := make([][]string, 0, len(lot.ProductionData))
	for _, r := range lot.ProductionData {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.SerialNumber),
			formatQty(r.Meter),
			fmt.Sprintf("%d", r.Layer),
			formatQty(r.Pieces),
			r.Color,
			r.Shade,
			r.ZipCode,
			r.ThreadCode,
		})
	}
	addTable(m, columns, rows)

	addSummary(m, [][2]string{
		{"Total Meter", formatQty(lot.TotalMeter)},
		{"Total Pieces", formatQty(lot.TotalPieces)},
		{"Tukda", fmt.Sprintf("%d × size %s", lot.Tukda.Count, dash(lot.Tukda.Size))},
		{"Total Pieces with Tukda", formatQty(lot.TotalPiecesWithTukda)},
		{"Average", formatAverage(lot.Average)},
	})

	return renderPDF(m)
}

// GenerateJobCardPDF renders a job card for the floor. workerNames maps a
// worker reference to the name printed on the sheet; unknown references
// are printed as they are.
func GenerateJobCardPDF(jc models.JobCard, workerNames map[string]string) ([]byte, error) {
	m := newPDF(orientation.Horizontal)

	addTitle(m, "Job Card "+jc.LotNumber, "Date: "+dash(jc.Date))
	addDetails(m, [][2]string{
		{"Brand", jc.Brand},
		{"Fly Width", jc.FlyWidth},
	})
	addRatios(m, jc.Ratios)

	columns := []pdfColumn{
		{"S.No", 1, align.Center},
		{"Layer", 1, align.Right},
		{"Pieces", 2, align.Right},
		{"Color", 2, align.Left},
		{"Shade", 2, align.Left},
		{"Front", 4, align.Left},
		{"Back", 4, align.Left},
		{"Zip", 4, align.Left},
		{"Zip Code", 2, align.Left},
		{"Thread", 2, align.Left},
	}
	rows := make([][]string, 0, len(jc.ProductionData))
	for _, r := range jc.ProductionData {
		cells := []string{
			fmt.Sprintf("%d", r.SerialNumber),
			fmt.Sprintf("%d", r.Layer),
			formatQty(r.Pieces),
			r.Color,
			r.Shade,
		}
		ops := []string{r.Front, r.Back, r.Zip}
		for i, a := range r.Assignments() {
			cells = append(cells, describeAssignment(ops[i], a, workerNames))
		}
		cells = append(cells, r.ZipCode, r.ThreadCode)
		rows = append(rows, cells)
	}
	addTable(m, columns, rows)

	info := jc.AdditionalInfo
	addSummary(m, [][2]string{
		{"Belt", dash(info.Belt)},
		{"Bottom", dash(info.Bottom)},
		{"Pasting", dash(info.Pasting)},
		{"Bone", dash(info.Bone)},
		{"Hala", dash(info.Hala)},
		{"Ticket Pocket", dash(info.TicketPocket)},
	})

	return renderPDF(m)
}

// GenerateWorkerReportPDF renders the worker pay report with its totals.
func GenerateWorkerReportPDF(report AnalyticsReport, f AnalyticsFilter) ([]byte, error) {
	m := newPDF(orientation.Vertical)

	title := "Worker Analytics"
	if report.WorkerName != "" {
		title += " - " + report.WorkerName
	}
	addTitle(m, title, describePeriod(f))

	columns := []pdfColumn{
		{"Worker ID", 2, align.Center},
		{"Worker Name", 4, align.Left},
		{"Operation", 2, align.Left},
		{"Date", 3, align.Center},
		{"Rate", 2, align.Right},
		{"Lot Number", 3, align.Left},
		{"Layer", 2, align.Right},
		{"Pieces", 2, align.Right},
		{"Amount", 4, align.Right},
	}
	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.WorkerID),
			r.WorkerFullName,
			r.Operation,
			r.Date,
			fmt.Sprintf("%.2f", r.Rate),
			r.LotNumber,
			fmt.Sprintf("%d", r.Layer),
			formatQty(r.Pieces),
			FormatINR(r.TotalAmount),
		})
	}
	addTable(m, columns, rows)

	addSummary(m, [][2]string{
		{"Records", fmt.Sprintf("%d", len(report.Rows))},
		{"Total Pieces", formatQty(report.TotalPieces)},
		{"Total Amount", FormatINR(report.TotalAmount)},
	})

	return renderPDF(m)
}

func addTitle(m core.Maroto, title, right string) {
	m.AddRows(
		row.New(12).Add(
			col.New(pdfGrid).Add(
				text.New(title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)
	m.AddRows(
		row.New(8).Add(
			col.New(pdfGrid).Add(
				text.New(right, props.Text{
					Size:  9,
					Align: align.Right,
					Color: mutedColor,
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

// addDetails prints label/value pairs side by side across one row.
func addDetails(m core.Maroto, pairs [][2]string) {
	if len(pairs) == 0 {
		return
	}
	width := pdfGrid / len(pairs)
	cols := make([]core.Col, 0, len(pairs))
	for _, p := range pairs {
		cols = append(cols, col.New(width).Add(
			text.New(p[0]+": "+dash(p[1]), props.Text{Size: 9, Align: align.Left}),
		))
	}
	m.AddRows(row.New(7).Add(cols...))
	m.AddRows(row.New(3))
}

// addRatios prints the nine size ratios and their sum.
func addRatios(m core.Maroto, r models.Ratios) {
	columns := make([]pdfColumn, 0, len(models.SizeKeys)+1)
	values := make([]string, 0, len(models.SizeKeys)+1)
	for _, k := range models.SizeKeys {
		columns = append(columns, pdfColumn{strings.TrimPrefix(k, "r"), 2, align.Center})
		values = append(values, formatRatio(r[k]))
	}
	columns = append(columns, pdfColumn{"Sum", pdfGrid - 2*len(models.SizeKeys), align.Center})
	values = append(values, formatRatio(SumRatios(r)))
	addTable(m, columns, [][]string{values})
}

func addTable(m core.Maroto, columns []pdfColumn, rows [][]string) {
	headerCell := &props.Cell{BackgroundColor: headerBg}
	header := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		header = append(header, col.New(c.Size).Add(
			text.New(c.Label, props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: c.Align,
				Color: &props.Color{Red: 255, Green: 255, Blue: 255},
			}),
		).WithStyle(headerCell))
	}
	m.AddRows(row.New(8).Add(header...))

	stripe := &props.Cell{BackgroundColor: stripeBg}
	for i, cells := range rows {
		cols := make([]core.Col, 0, len(columns))
		for j, c := range columns {
			value := ""
			if j < len(cells) {
				value = cells[j]
			}
			cl := col.New(c.Size).Add(text.New(value, props.Text{Size: 7, Align: c.Align}))
			if i%2 == 1 {
				cl = cl.WithStyle(stripe)
			}
			cols = append(cols, cl)
		}
		m.AddRows(row.New(7).Add(cols...))
	}
	m.AddRows(row.New(4))
}

func addSummary(m core.Maroto, pairs [][2]string) {
	cell := &props.Cell{BackgroundColor: summaryBg}
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	for _, p := range pairs {
		m.AddRows(
			row.New(8).Add(
				col.New(16).Add(text.New(p[0], label)).WithStyle(cell),
				col.New(8).Add(text.New(p[1], label)).WithStyle(cell),
			),
		)
	}
}

func describeAssignment(op string, a models.Assignment, workerNames map[string]string) string {
	var parts []string
	if op != "" {
		parts = append(parts, op)
	}
	if a.WorkerRef != "" {
		name := a.WorkerRef
		if n, ok := workerNames[a.WorkerRef]; ok {
			name = n
		}
		parts = append(parts, name)
	}
	if a.Date != "" {
		parts = append(parts, a.Date)
	}
	if a.Rate != "" {
		parts = append(parts, "@"+a.Rate)
	}
	return strings.Join(parts, " / ")
}

func describePeriod(f AnalyticsFilter) string {
	switch {
	case f.From != "" && f.To != "":
		return fmt.Sprintf("From %s to %s", f.From, f.To)
	case f.From != "":
		return "From " + f.From
	case f.To != "":
		return "Up to " + f.To
	}
	return "All dates"
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
