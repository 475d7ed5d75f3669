// Package report generates the exported documents: the multi-page admin
// report and the course-completion certificate. Both are rendered locally
// from in-memory data with no server round-trip.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/structura-app/structura-cli/internal/dashboard"
)

// Generator writes generated documents into an output directory.
type Generator struct {
	outDir string
	log    *zap.Logger
}

// NewGenerator creates a Generator writing into outDir.
func NewGenerator(outDir string, log *zap.Logger) *Generator {
	return &Generator{outDir: outDir, log: log}
}

// Report assembles the multi-page admin report from a dashboard snapshot:
// a metrics page, one page per rasterized chart, the recent-activity table
// and a narrative summary. It returns the path of the written PDF.
func (g *Generator) Report(snap *dashboard.Snapshot) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Structura platform report", false)

	g.metricsPage(pdf, snap)
	g.chartPage(pdf, "User growth", func() ([]byte, error) { return growthChartPNG(snap.Growth) })
	g.chartPage(pdf, "Post categories", func() ([]byte, error) { return categoryChartPNG(snap.Categories) })
	g.chartPage(pdf, "Review ratings", func() ([]byte, error) { return ratingChartPNG(snap.Ratings) })
	g.activityPage(pdf, snap)

	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(g.outDir, "structura-report-"+uuid.NewString()+".pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	g.log.Info("report generated", zap.String("path", path))
	return path, nil
}

// metricsPage lays out the title block and the headline metrics table at
// fixed coordinates.
func (g *Generator) metricsPage(pdf *gofpdf.Fpdf, snap *dashboard.Snapshot) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(15, 20)
	pdf.CellFormat(180, 12, "Structura platform report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(15, 34)
	pdf.CellFormat(180, 8, "Generated "+snap.LoadedAt.Format("January 2, 2006 15:04"), "", 1, "C", false, 0, "")

	rows := [][2]string{
		{"Total users", fmt.Sprintf("%d", len(snap.Users))},
		{"Total posts", fmt.Sprintf("%d", len(snap.Posts))},
		{"Total courses", fmt.Sprintf("%d", len(snap.Courses))},
		{"Total reviews", fmt.Sprintf("%d", len(snap.Reviews))},
		{"Average rating", fmt.Sprintf("%.1f / 5", snap.AverageRating)},
	}
	pdf.SetXY(40, 60)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 10, "Metric", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 10, "Value", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for _, row := range rows {
		pdf.SetX(40)
		pdf.CellFormat(80, 10, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 10, row[1], "1", 1, "R", false, 0, "")
	}

	pdf.SetXY(15, 140)
	pdf.SetFont("Helvetica", "", 11)
	narrative := fmt.Sprintf(
		"The platform currently counts %d members, %d community posts and %d courses. "+
			"Members left %d reviews with an average rating of %.1f out of 5.",
		len(snap.Users), len(snap.Posts), len(snap.Courses), len(snap.Reviews), snap.AverageRating,
	)
	pdf.MultiCell(180, 6, narrative, "", "L", false)
}

// chartPage rasterizes one chart and embeds it on its own page. Charts
// without enough data are skipped rather than failing the whole report.
func (g *Generator) chartPage(pdf *gofpdf.Fpdf, heading string, render func() ([]byte, error)) {
	png, err := render()
	if err != nil {
		g.log.Debug("chart skipped", zap.String("chart", heading), zap.Error(err))
		return
	}
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(15, 20)
	pdf.CellFormat(180, 10, heading, "", 1, "L", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(heading, opts, bytes.NewReader(png))
	pdf.ImageOptions(heading, 15, 40, 180, 0, false, opts, 0, "")
}

// activityPage renders the recent-activity feed as a table.
func (g *Generator) activityPage(pdf *gofpdf.Fpdf, snap *dashboard.Snapshot) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(15, 20)
	pdf.CellFormat(180, 10, "Recent activity", "", 1, "L", false, 0, "")

	pdf.SetXY(15, 36)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(30, 8, "Kind", "1", 0, "L", false, 0, "")
	pdf.CellFormat(110, 8, "Title", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "When", "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, a := range snap.Activity {
		title := a.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		pdf.SetX(15)
		pdf.CellFormat(30, 8, a.Kind, "1", 0, "L", false, 0, "")
		pdf.CellFormat(110, 8, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, a.At.Format("2006-01-02"), "1", 1, "L", false, 0, "")
	}
}

// Certificate generates a single-page landscape certificate for a course
// completion claim and returns the path of the written PDF.
func (g *Generator) Certificate(student, course string, completedOn time.Time) (string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate of completion", false)
	pdf.AddPage()

	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, 277, 190, "D")

	pdf.SetFont("Helvetica", "B", 32)
	pdf.SetXY(20, 40)
	pdf.CellFormat(257, 16, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetXY(20, 75)
	pdf.CellFormat(257, 10, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetXY(20, 90)
	pdf.CellFormat(257, 14, student, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetXY(20, 110)
	pdf.CellFormat(257, 10, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(20, 125)
	pdf.CellFormat(257, 12, course, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(20, 160)
	pdf.CellFormat(257, 8, completedOn.Format("January 2, 2006"), "", 1, "C", false, 0, "")

	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(g.outDir, "structura-certificate-"+uuid.NewString()+".pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write certificate: %w", err)
	}
	g.log.Info("certificate generated", zap.String("path", path))
	return path, nil
}
