// Package report renders the case integrity report as a standalone HTML
// document. It consumes the ledger read-only; rendering derives aggregate
// statistics but never mutates evidence state.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"
)

//go:embed template.html
var templateFS embed.FS

// Renderer generates HTML reports for a case.
type Renderer struct {
	tmpl  *template.Template
	clock forensic.Clock
}

// NewRenderer parses the embedded report template.
func NewRenderer(clock forensic.Clock) (*Renderer, error) {
	tmpl, err := template.New("template.html").
		Funcs(template.FuncMap{
			"add1": func(i int) int { return i + 1 },
		}).
		ParseFS(templateFS, "template.html")
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}
	return &Renderer{tmpl: tmpl, clock: clock}, nil
}

// reportData is the root template context.
type reportData struct {
	Case        *forensic.CaseInfo
	Summary     *forensic.CaseSummary
	Records     []*forensic.EvidenceRecord
	Categories  []categoryCount
	GeneratedAt time.Time
}

type categoryCount struct {
	Category forensic.Category
	Count    int
	Percent  float64
}

// Render writes the HTML report for a case to w.
func (r *Renderer) Render(w io.Writer, info *forensic.CaseInfo, summary *forensic.CaseSummary, records []*forensic.EvidenceRecord) error {
	data := &reportData{
		Case:        info,
		Summary:     summary,
		Records:     records,
		Categories:  categoryCounts(summary),
		GeneratedAt: r.clock.Now(),
	}
	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// Generate renders the report into reportsDir under a timestamped filename
// and returns the report path.
func (r *Renderer) Generate(reportsDir string, info *forensic.CaseInfo, summary *forensic.CaseSummary, records []*forensic.EvidenceRecord) (string, error) {
	name := fmt.Sprintf("forensic_report_case_%s_%s.html",
		info.Number, r.clock.Now().Format("20060102_150405"))
	path := filepath.Join(reportsDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := r.Render(f, info, summary, records); err != nil {
		return "", err
	}
	return path, nil
}

// categoryCounts flattens the summary's category map into a stable-ordered
// slice with percentages for the template.
func categoryCounts(summary *forensic.CaseSummary) []categoryCount {
	if summary.TotalFiles == 0 {
		return nil
	}
	out := make([]categoryCount, 0, len(summary.CountByCategory))
	for category, count := range summary.CountByCategory {
		out = append(out, categoryCount{
			Category: category,
			Count:    count,
			Percent:  float64(count) / float64(summary.TotalFiles) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
