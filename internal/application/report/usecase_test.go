package report_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/internal/domain"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/i18n"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/memory"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

type fakeSource struct {
	sales   []entity.SaleRecord
	stock   []entity.StockRecord
	transit []entity.TransitRecord
	err     error
	token   string
}

func (f *fakeSource) SalesReport(_ context.Context, token, _, _ string) ([]entity.SaleRecord, error) {
	f.token = token
	return f.sales, f.err
}
func (f *fakeSource) Stocks(context.Context, string, string) ([]entity.StockRecord, error) {
	return f.stock, nil
}
func (f *fakeSource) OrdersInTransit(context.Context, string) ([]entity.TransitRecord, error) {
	return f.transit, nil
}

type stubRenderer struct {
	kind  report.ArtifactKind
	err   error
	panic bool
	empty bool
}

func (r stubRenderer) Kind() report.ArtifactKind { return r.kind }
func (r stubRenderer) Render(context.Context, *report.ReportMetrics) (*report.Artifact, error) {
	if r.panic {
		panic("sin fuente")
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.empty {
		return nil, nil
	}
	return &report.Artifact{Kind: r.kind, Name: string(r.kind) + ".bin", Data: []byte("x")}, nil
}

type memStore struct {
	failFor report.ArtifactKind
	keys    []string
}

func (s *memStore) Save(_ context.Context, key string, a *report.Artifact) (string, error) {
	if a.Kind == s.failFor {
		return "", errors.New("disco lleno")
	}
	s.keys = append(s.keys, key)
	return "/tmp/" + key, nil
}

type countingRecorder struct {
	mu       sync.Mutex
	outcomes []string
	failed   []string
}

func (r *countingRecorder) ReportGenerated(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}
func (r *countingRecorder) ArtifactFailed(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, kind)
}

func newUseCase(t *testing.T, src *fakeSource, renderers []report.ArtifactRenderer, opts ...report.Option) *report.ReportUseCase {
	t.Helper()
	sellers := memory.NewSellerRepository()
	require.NoError(t, sellers.Save(context.Background(), entity.Seller{ID: 1, WBToken: "tok"}))
	return report.NewReportUseCase(sellers, src, &mapResolver{}, i18n.NewPrinter(language.English), renderers, logger.Nop(), opts...)
}

func TestGenerate_AisladoPorArtefacto(t *testing.T) {
	src := &fakeSource{sales: []entity.SaleRecord{sale("A", 1, 10, 0, 0)}}
	rec := &countingRecorder{}
	store := &memStore{failFor: report.ArtifactPDF}
	uc := newUseCase(t, src, []report.ArtifactRenderer{
		stubRenderer{kind: report.ArtifactSpreadsheet, panic: true},
		stubRenderer{kind: report.ArtifactChart},
		stubRenderer{kind: report.ArtifactPDF},
	}, report.WithRecorder(rec), report.WithStore(store))

	res, err := uc.Generate(context.Background(), 1, "2024-03-01", "2024-03-07")
	require.NoError(t, err)

	assert.Equal(t, "tok", src.token)
	require.Len(t, res.Artifacts, 1)
	chart, ok := res.Artifact(report.ArtifactChart)
	require.True(t, ok)
	assert.Equal(t, "/tmp/reports/1/"+res.RunID+"/chart.bin", chart.Location)

	require.Len(t, res.Failures, 2)
	assert.Equal(t, report.ArtifactSpreadsheet, res.Failures[0].Kind)
	assert.Contains(t, res.Failures[0].Error, "panic")
	assert.Equal(t, report.ArtifactPDF, res.Failures[1].Kind)
	assert.Contains(t, res.Failures[1].Error, "disco lleno")

	assert.Equal(t, []string{report.OutcomePartial}, rec.outcomes)
	assert.Equal(t, []string{"spreadsheet", "pdf"}, rec.failed)
	assert.NotEmpty(t, res.Text)
}

func TestGenerate_ArtefactoVacioNoEsFalla(t *testing.T) {
	src := &fakeSource{stock: []entity.StockRecord{{Article: "A"}}}
	rec := &countingRecorder{}
	uc := newUseCase(t, src, []report.ArtifactRenderer{
		stubRenderer{kind: report.ArtifactChart, empty: true},
		stubRenderer{kind: report.ArtifactPDF, err: errors.New("boom")},
	}, report.WithRecorder(rec))

	res, err := uc.Generate(context.Background(), 1, "2024-03-01", "2024-03-07")
	require.NoError(t, err)
	assert.Empty(t, res.Artifacts)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, report.ArtifactPDF, res.Failures[0].Kind)
}

func TestGenerate_SinDatos(t *testing.T) {
	rec := &countingRecorder{}
	uc := newUseCase(t, &fakeSource{}, nil, report.WithRecorder(rec))

	_, err := uc.Generate(context.Background(), 1, "2024-03-01", "2024-03-07")
	assert.ErrorIs(t, err, domain.ErrNoData)
	assert.Equal(t, []string{report.OutcomeNoData}, rec.outcomes)
}

func TestGenerate_ErrorDeDescargaNoEsSinDatos(t *testing.T) {
	boom := errors.New("timeout")
	rec := &countingRecorder{}
	uc := newUseCase(t, &fakeSource{err: boom}, nil, report.WithRecorder(rec))

	_, err := uc.Generate(context.Background(), 1, "2024-03-01", "2024-03-07")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNoData)
	assert.Equal(t, []string{report.OutcomeFailed}, rec.outcomes)
}

func TestGenerate_Validaciones(t *testing.T) {
	uc := newUseCase(t, &fakeSource{}, nil)

	_, err := uc.Generate(context.Background(), 1, "2024-03-07", "2024-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Generate(context.Background(), 99, "2024-03-01", "2024-03-07")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
