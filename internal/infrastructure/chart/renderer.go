// Package chart dibuja la gráfica de utilidad diaria con gonum/plot.
package chart

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/internal/i18n"
)

const (
	contentType = "image/png"
	width       = 10 * vg.Inch
	height      = 5 * vg.Inch
	day         = 24 * time.Hour
)

var profitColor = color.RGBA{G: 128, A: 255}

var _ report.ArtifactRenderer = (*Renderer)(nil)

// Renderer gráfica de línea con la utilidad de cada día del período.
type Renderer struct {
	p *i18n.Printer
}

// NewRenderer construye el renderizador.
func NewRenderer(p *i18n.Printer) *Renderer {
	return &Renderer{p: p}
}

func (r *Renderer) Kind() report.ArtifactKind { return report.ArtifactChart }

// FileName nombre de la imagen para el período.
func FileName(period report.Period) string {
	return fmt.Sprintf("sales_chart_%s_%s.png", period.From, period.To)
}

// Render devuelve (nil, nil) si no hubo ventas concretadas con fecha.
func (r *Renderer) Render(_ context.Context, m *report.ReportMetrics) (*report.Artifact, error) {
	days := m.DailyProfits()
	if len(days) == 0 {
		return nil, nil
	}

	p := plot.New()
	p.Title.Text = r.p.T(i18n.ChartTitle, m.Period.From, m.Period.To)
	p.X.Label.Text = r.p.T(i18n.ChartXLabel)
	p.Y.Label.Text = r.p.T(i18n.ChartYLabel)
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(days))
	for i, d := range days {
		pts[i].X = float64(d.Date.Unix())
		pts[i].Y = d.Profit().Float64()
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("chart: serie: %w", err)
	}
	line.Color = profitColor
	points.Color = profitColor
	p.Add(line, points)
	p.Legend.Add(r.p.T(i18n.ChartYLabel), line, points)
	p.Legend.Top = true
	p.Legend.Left = true

	// eje X sobre todo el rango pedido aunque haya días sin ventas
	if from, to := m.Period.Bounds(); !from.IsZero() && !to.IsZero() {
		minX, maxX := float64(from.Unix()), float64(to.Add(day).Unix())
		if pts[0].X < minX {
			minX = pts[0].X
		}
		if last := pts[len(pts)-1].X; last > maxX {
			maxX = last
		}
		p.X.Min, p.X.Max = minX, maxX
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("chart: canvas: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("chart: png: %w", err)
	}
	return &report.Artifact{
		Kind:        report.ArtifactChart,
		Name:        FileName(m.Period),
		ContentType: contentType,
		Data:        buf.Bytes(),
	}, nil
}
