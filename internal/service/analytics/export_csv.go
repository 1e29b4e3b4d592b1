package analytics

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/korima-app/korima-backend/internal/domain"
)

// utf8BOM makes spreadsheet applications detect the encoding.
const utf8BOM = "\ufeff"

// ExportCSV writes the overview as a sectioned CSV document. Staff only.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	o, err := s.Overview(ctx)
	if err != nil {
		return err
	}
	if err := WriteCSV(w, o); err != nil {
		return fmt.Errorf("analytics.ExportCSV: %w", err)
	}
	return nil
}

// WriteCSV renders o as CSV, preceded by a UTF-8 byte order mark.
func WriteCSV(w io.Writer, o *domain.AnalyticsOverview) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	t := o.Totals
	rows := [][]string{
		{"REPORTE ANALÍTICO - " + o.GeneratedAt.Format("02/01/2006")},
		{},
		{"=== MÉTRICAS DE RENDIMIENTO ==="},
		{"Tasa de Resolución", pct(o.ResolutionRate)},
		{"Total Resueltas", itoa(t.Completed)},
		{"Total Activas", itoa(t.Active)},
		{"Total Cerradas", itoa(t.Closed)},
		{"Respuestas por Solicitud", fixed(o.AvgResponsesPerRequest, 2)},
		{"Tasa Mejor Respuesta", pct(o.BestAnswerRate)},
		{},
		{"=== TEMÁTICAS MÁS DEMANDADAS ==="},
		{"Categoría", "Cantidad", "Resueltas"},
	}
	for _, c := range o.Categories {
		rows = append(rows, []string{string(c.Category), itoa(c.Total), itoa(c.Resolved)})
	}

	rows = append(rows, []string{}, []string{"=== DISTRIBUCIÓN POR NIVEL ==="}, []string{"Nivel", "Usuarios"})
	for _, l := range o.Levels {
		rows = append(rows, []string{l.Level.String(), itoa(l.Users)})
	}

	rows = append(rows, []string{}, []string{"=== MEJORES CONTRIBUIDORES ==="}, []string{"Usuario", "Mejores Respuestas", "Puntos"})
	for _, c := range o.TopContributors {
		rows = append(rows, []string{c.FullName, itoa(c.BestAnswers), itoa(c.Points)})
	}

	rows = append(rows,
		[]string{},
		[]string{"=== ECONOMÍA DE PUNTOS ==="},
		[]string{"Puntos en Circulación", itoa(t.PointsInCirculation)},
		[]string{"Promedio por Usuario", fixed(o.AvgPointsPerUser, 0)},
		[]string{},
		[]string{"=== TENDENCIA MENSUAL ==="},
		[]string{"Mes", "Solicitudes", "Resueltas"},
	)
	for _, m := range o.Monthly {
		rows = append(rows, []string{m.Month.Format("2006-01"), itoa(m.Requests), itoa(m.Resolved)})
	}

	rows = append(rows,
		[]string{},
		[]string{"=== ANÁLISIS ADICIONAL ==="},
		[]string{"Solicitudes Urgentes", itoa(t.Urgent)},
		[]string{"Solicitudes Normales", itoa(t.Requests - t.Urgent)},
		[]string{"Tasa Resolución Urgentes", pct(o.UrgentResolutionRate)},
		[]string{"Tasa Resolución Normales", pct(o.NormalResolutionRate)},
		[]string{"Con DOI", itoa(t.WithDOI)},
		[]string{"Sin DOI", itoa(t.Requests - t.WithDOI)},
		[]string{"Comentarios Promedio por Solicitud", fixed(o.AvgCommentsPerRequest, 2)},
	)

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func fixed(f float64, prec int) string { return strconv.FormatFloat(f, 'f', prec, 64) }

func pct(f float64) string { return fixed(f, 1) + "%" }
