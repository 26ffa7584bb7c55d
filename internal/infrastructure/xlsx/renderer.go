// Package xlsx genera el libro de Excel del reporte de ventas con excelize.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/internal/i18n"
)

const (
	contentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timeLayout   = "2006-01-02 15:04:05"
	defaultSheet = "Sheet1"
)

var _ report.ArtifactRenderer = (*Renderer)(nil)

// Renderer arma hasta cuatro hojas: detalle, resumen, saldos y en tránsito.
// Cada hoja aparece solo si su fuente tiene datos.
type Renderer struct {
	p *i18n.Printer
}

// NewRenderer construye el renderizador con los textos del idioma dado.
func NewRenderer(p *i18n.Printer) *Renderer {
	return &Renderer{p: p}
}

func (r *Renderer) Kind() report.ArtifactKind { return report.ArtifactSpreadsheet }

// FileName nombre del libro para el período.
func FileName(period report.Period) string {
	return fmt.Sprintf("sales_report_%s_%s.xlsx", period.From, period.To)
}

// Render devuelve (nil, nil) si ninguna hoja tendría filas.
func (r *Renderer) Render(_ context.Context, m *report.ReportMetrics) (*report.Artifact, error) {
	sheets := r.sheets(m)
	if len(sheets) == 0 {
		return nil, nil
	}

	f := excelize.NewFile()
	defer f.Close()

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sh.name); err != nil {
				return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %q: %w", sh.name, err)
		}
		if err := writeSheet(f, sh, header, money); err != nil {
			return nil, fmt.Errorf("xlsx: hoja %q: %w", sh.name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return &report.Artifact{
		Kind:        report.ArtifactSpreadsheet,
		Name:        FileName(m.Period),
		ContentType: contentType,
		Data:        buf.Bytes(),
	}, nil
}

type sheet struct {
	name      string
	headers   []string
	rows      [][]any
	moneyCols []int // índices (0-based) con formato monetario
	widths    []float64
}

func (r *Renderer) sheets(m *report.ReportMetrics) []sheet {
	var out []sheet
	if completed := m.CompletedSales(); len(completed) > 0 {
		out = append(out, r.detailSheet(m, completed), r.summarySheet(m))
	}
	if len(m.Stock) > 0 {
		out = append(out, r.stockSheet(m))
	}
	if len(m.Transit) > 0 {
		out = append(out, r.transitSheet(m))
	}
	return out
}

func writeSheet(f *excelize.File, sh sheet, headerStyle, moneyStyle int) error {
	for col, h := range sh.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sh.name, cell, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(sh.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sh.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return err
		}
	}

	if len(sh.rows) > 0 {
		for _, c := range sh.moneyCols {
			top, _ := excelize.CoordinatesToCellName(c+1, 2)
			bottom, _ := excelize.CoordinatesToCellName(c+1, len(sh.rows)+1)
			if err := f.SetCellStyle(sh.name, top, bottom, moneyStyle); err != nil {
				return err
			}
		}
	}

	for i, w := range sh.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sh.name, col, col, w); err != nil {
			return err
		}
	}
	return nil
}
