package report

import (
	"context"
	"time"

	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
)

// MarketplaceSource descarga las colecciones crudas del marketplace.
type MarketplaceSource interface {
	SalesReport(ctx context.Context, token, dateFrom, dateTo string) ([]entity.SaleRecord, error)
	Stocks(ctx context.Context, token, dateFrom string) ([]entity.StockRecord, error)
	OrdersInTransit(ctx context.Context, token string) ([]entity.TransitRecord, error)
}

// ArtifactKind tipo de archivo generado.
type ArtifactKind string

const (
	ArtifactSpreadsheet ArtifactKind = "spreadsheet"
	ArtifactChart       ArtifactKind = "chart"
	ArtifactPDF         ArtifactKind = "pdf"
)

// Artifact archivo renderizado. Location queda vacío hasta que se almacena.
type Artifact struct {
	Kind        ArtifactKind
	Name        string
	ContentType string
	Data        []byte
	Location    string
}

// ArtifactRenderer genera un archivo a partir de las métricas.
// Devuelve (nil, nil) cuando no hay nada que dibujar.
type ArtifactRenderer interface {
	Kind() ArtifactKind
	Render(ctx context.Context, m *ReportMetrics) (*Artifact, error)
}

// ArtifactStore guarda un archivo y devuelve su ubicación (ruta o URL).
type ArtifactStore interface {
	Save(ctx context.Context, key string, a *Artifact) (string, error)
}

// Recorder registra el resultado de cada generación (métricas de proceso).
type Recorder interface {
	ReportGenerated(outcome string, elapsed time.Duration)
	ArtifactFailed(kind string)
}

type nopRecorder struct{}

func (nopRecorder) ReportGenerated(string, time.Duration) {}
func (nopRecorder) ArtifactFailed(string)                 {}
