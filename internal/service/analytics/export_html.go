package analytics

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/korima-app/korima-backend/internal/domain"
)

//go:embed report.html.tmpl
var reportSource string

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"date":     func(t time.Time) string { return t.Format("02/01/2006") },
	"datetime": func(t time.Time) string { return t.Format("02/01/2006 15:04 MST") },
	"month":    func(t time.Time) string { return t.Format("2006-01") },
	"pct":      pct,
	"fixed0":   func(f float64) string { return fixed(f, 0) },
	"fixed1":   func(f float64) string { return fixed(f, 1) },
	"fixed2":   func(f float64) string { return fixed(f, 2) },
	"inc":      func(i int) int { return i + 1 },
	"sub":      func(a, b int) int { return a - b },
}).Parse(reportSource))

// ExportHTML writes a printable report. Staff only.
func (s *Service) ExportHTML(ctx context.Context, w io.Writer) error {
	o, err := s.Overview(ctx)
	if err != nil {
		return err
	}
	if err := WriteHTML(w, o); err != nil {
		return fmt.Errorf("analytics.ExportHTML: %w", err)
	}
	return nil
}

// WriteHTML renders o as a standalone HTML page ready for print-to-PDF.
func WriteHTML(w io.Writer, o *domain.AnalyticsOverview) error {
	return reportTmpl.Execute(w, o)
}
