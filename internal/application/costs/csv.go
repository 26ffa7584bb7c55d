package costs

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const maxImportBytes = 5 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CostRow fila válida del archivo de costos.
type CostRow struct {
	Line    int
	Article string
	Cost    decimal.Decimal
}

// LineError fila rechazada con su número de línea (1 = primera línea del archivo).
type LineError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ParseCostCSV lee filas "artículo,costo". Acepta UTF-8 (con o sin BOM) o
// Windows-1251, separador ',' o ';' y encabezado opcional.
func ParseCostCSV(r io.Reader) ([]CostRow, []LineError, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxImportBytes+1))
	if err != nil {
		return nil, nil, fmt.Errorf("costs: leer archivo: %w", err)
	}
	if len(raw) > maxImportBytes {
		return nil, nil, errors.New("costs: archivo demasiado grande")
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		raw, _, err = transform.Bytes(charmap.Windows1251.NewDecoder(), raw)
		if err != nil {
			return nil, nil, fmt.Errorf("costs: decodificar windows-1251: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = detectDelimiter(raw)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var (
		rows    []CostRow
		badRows []LineError
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				badRows = append(badRows, LineError{Line: perr.Line, Reason: perr.Err.Error()})
				continue
			}
			return nil, nil, fmt.Errorf("costs: leer csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if isBlank(rec) {
			continue
		}
		if len(rows) == 0 && len(badRows) == 0 && isHeader(rec) {
			continue
		}
		if len(rec) < 2 {
			badRows = append(badRows, LineError{Line: line, Reason: "se esperan dos columnas: artículo y costo"})
			continue
		}
		article := strings.TrimSpace(rec[0])
		if article == "" {
			badRows = append(badRows, LineError{Line: line, Reason: "artículo vacío"})
			continue
		}
		cost, err := ParseCost(rec[1])
		if err != nil {
			badRows = append(badRows, LineError{Line: line, Reason: err.Error()})
			continue
		}
		rows = append(rows, CostRow{Line: line, Article: article, Cost: cost})
	}
	return rows, badRows, nil
}

// ParseCost acepta "150", "150.5" o "150,50"; rechaza negativos.
func ParseCost(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("costo inválido: %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("costo negativo: %s", d.String())
	}
	return d, nil
}

// detectDelimiter elige ';' si la primera línea lo usa (Excel en locale ruso).
func detectDelimiter(raw []byte) rune {
	first, _, _ := bytes.Cut(raw, []byte("\n"))
	semi := bytes.Count(first, []byte(";"))
	if semi > 0 && semi >= bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func isHeader(rec []string) bool {
	h := strings.ToLower(strings.TrimSpace(rec[0]))
	return h == "article" || h == "артикул" || h == "vendor_code" || h == "sa_name"
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
