package report

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/DenisZev/wildberries-bot/internal/domain"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/repository"
	"github.com/DenisZev/wildberries-bot/internal/i18n"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

const (
	OutcomeOK      = "ok"
	OutcomeNoData  = "no_data"
	OutcomeFailed  = "failed"
	OutcomePartial = "partial"
)

// ArtifactFailure artefacto que no se pudo generar o guardar.
type ArtifactFailure struct {
	Kind  ArtifactKind
	Error string
}

// ReportResult salida de una generación de reporte.
type ReportResult struct {
	RunID     string
	SellerID  int64
	Period    Period
	Text      string
	Metrics   *ReportMetrics
	Artifacts []Artifact
	Failures  []ArtifactFailure
}

// Artifact devuelve el artefacto del tipo pedido, si se generó.
func (r *ReportResult) Artifact(kind ArtifactKind) (*Artifact, bool) {
	for i := range r.Artifacts {
		if r.Artifacts[i].Kind == kind {
			return &r.Artifacts[i], true
		}
	}
	return nil, false
}

// ReportUseCase orquesta descarga, agregación y renderizado de un reporte.
type ReportUseCase struct {
	sellers    repository.SellerRepository
	source     MarketplaceSource
	aggregator *Aggregator
	renderers  []ArtifactRenderer
	store      ArtifactStore
	printer    *i18n.Printer
	recorder   Recorder
	log        *logger.Logger
}

// Option ajusta dependencias opcionales del caso de uso.
type Option func(*ReportUseCase)

// WithRecorder registra métricas de cada generación.
func WithRecorder(r Recorder) Option {
	return func(uc *ReportUseCase) { uc.recorder = r }
}

// WithStore guarda los artefactos generados.
func WithStore(s ArtifactStore) Option {
	return func(uc *ReportUseCase) { uc.store = s }
}

// NewReportUseCase construye el caso de uso. renderers puede ir vacío (solo texto).
func NewReportUseCase(
	sellers repository.SellerRepository,
	source MarketplaceSource,
	resolver CostResolver,
	printer *i18n.Printer,
	renderers []ArtifactRenderer,
	log *logger.Logger,
	opts ...Option,
) *ReportUseCase {
	uc := &ReportUseCase{
		sellers:    sellers,
		source:     source,
		aggregator: NewAggregator(resolver),
		renderers:  renderers,
		printer:    printer,
		recorder:   nopRecorder{},
		log:        log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Generate produce el reporte de un vendedor para [dateFrom, dateTo].
// Devuelve domain.ErrNoData cuando el marketplace no trae nada para el período.
func (uc *ReportUseCase) Generate(ctx context.Context, sellerID int64, dateFrom, dateTo string) (*ReportResult, error) {
	period, err := NewPeriod(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	seller, err := uc.sellers.GetByID(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("report: obtener vendedor: %w", err)
	}
	if seller == nil {
		return nil, domain.ErrNotFound
	}

	in, err := uc.fetch(ctx, seller, period)
	if err != nil {
		uc.recorder.ReportGenerated(OutcomeFailed, 0)
		return nil, err
	}
	return uc.Build(ctx, in)
}

// fetch descarga las tres colecciones en paralelo.
func (uc *ReportUseCase) fetch(ctx context.Context, seller *entity.Seller, period Period) (Input, error) {
	type salesResult struct {
		rows []entity.SaleRecord
		err  error
	}
	type stockResult struct {
		rows []entity.StockRecord
		err  error
	}
	type transitResult struct {
		rows []entity.TransitRecord
		err  error
	}

	salesCh := make(chan salesResult, 1)
	stockCh := make(chan stockResult, 1)
	transitCh := make(chan transitResult, 1)

	go func() {
		rows, err := uc.source.SalesReport(ctx, seller.WBToken, period.From, period.To)
		salesCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := uc.source.Stocks(ctx, seller.WBToken, period.From)
		stockCh <- stockResult{rows, err}
	}()
	go func() {
		rows, err := uc.source.OrdersInTransit(ctx, seller.WBToken)
		transitCh <- transitResult{rows, err}
	}()

	sales := <-salesCh
	stock := <-stockCh
	transit := <-transitCh

	if sales.err != nil {
		return Input{}, fmt.Errorf("report: reporte de ventas: %w", sales.err)
	}
	if stock.err != nil {
		return Input{}, fmt.Errorf("report: saldos: %w", stock.err)
	}
	if transit.err != nil {
		return Input{}, fmt.Errorf("report: órdenes en tránsito: %w", transit.err)
	}

	return Input{
		SellerID: seller.ID,
		Period:   period,
		Sales:    sales.rows,
		Stock:    stock.rows,
		Transit:  transit.rows,
	}, nil
}

// Build agrega y renderiza colecciones ya descargadas. Un artefacto que falla
// no impide generar los demás.
func (uc *ReportUseCase) Build(ctx context.Context, in Input) (*ReportResult, error) {
	start := time.Now()
	runID := uuid.New().String()
	log := uc.log.With().Str("run_id", runID).Int64("seller_id", in.SellerID).Logger()

	m, err := uc.aggregator.Aggregate(ctx, in)
	if errors.Is(err, domain.ErrNoData) {
		log.Info().Str("period", in.Period.From+".."+in.Period.To).Msg("reporte sin datos")
		uc.recorder.ReportGenerated(OutcomeNoData, time.Since(start))
		return nil, err
	}
	if err != nil {
		uc.recorder.ReportGenerated(OutcomeFailed, time.Since(start))
		return nil, err
	}

	res := &ReportResult{
		RunID:    runID,
		SellerID: in.SellerID,
		Period:   in.Period,
		Text:     RenderText(uc.printer, m),
		Metrics:  m,
	}

	for _, r := range uc.renderers {
		art, err := uc.renderArtifact(ctx, r, m)
		if err == nil && art != nil && uc.store != nil {
			art.Location, err = uc.store.Save(ctx, artifactKey(in.SellerID, runID, art.Name), art)
			if err != nil {
				err = fmt.Errorf("guardar: %w", err)
			}
		}
		if err != nil {
			log.Error().Err(err).Str("artifact", string(r.Kind())).Msg("no se pudo generar el artefacto")
			uc.recorder.ArtifactFailed(string(r.Kind()))
			res.Failures = append(res.Failures, ArtifactFailure{Kind: r.Kind(), Error: err.Error()})
			continue
		}
		if art != nil {
			res.Artifacts = append(res.Artifacts, *art)
		}
	}

	outcome := OutcomeOK
	if len(res.Failures) > 0 {
		outcome = OutcomePartial
	}
	uc.recorder.ReportGenerated(outcome, time.Since(start))
	log.Info().
		Int("total_sales", m.TotalSales).
		Int("artifacts", len(res.Artifacts)).
		Int("failures", len(res.Failures)).
		Dur("elapsed", time.Since(start)).
		Msg("reporte generado")
	return res, nil
}

// renderArtifact convierte un panic del renderizador en error.
func (uc *ReportUseCase) renderArtifact(ctx context.Context, r ArtifactRenderer, m *ReportMetrics) (art *Artifact, err error) {
	defer func() {
		if p := recover(); p != nil {
			uc.log.Debug().Bytes("stack", debug.Stack()).Msg("panic en renderizador")
			art, err = nil, fmt.Errorf("%s: panic: %v", r.Kind(), p)
		}
	}()
	return r.Render(ctx, m)
}

func artifactKey(sellerID int64, runID, name string) string {
	return fmt.Sprintf("reports/%d/%s/%s", sellerID, runID, name)
}
