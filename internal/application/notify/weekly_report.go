package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/internal/domain"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/repository"
	"github.com/DenisZev/wildberries-bot/internal/i18n"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

const weeklyWindow = 7 * 24 * time.Hour

// ReportGenerator genera el reporte de un vendedor.
type ReportGenerator interface {
	Generate(ctx context.Context, sellerID int64, dateFrom, dateTo string) (*report.ReportResult, error)
}

// WeeklyReporter envía el reporte de los últimos 7 días a cada vendedor.
type WeeklyReporter struct {
	sellers   repository.SellerRepository
	reports   ReportGenerator
	notifier  Notifier
	printer   *i18n.Printer
	adminChat string
	log       *logger.Logger
	now       func() time.Time
}

// NewWeeklyReporter adminChat recibe el reporte de vendedores sin chat propio.
func NewWeeklyReporter(
	sellers repository.SellerRepository,
	reports ReportGenerator,
	notifier Notifier,
	printer *i18n.Printer,
	adminChat string,
	log *logger.Logger,
) *WeeklyReporter {
	return &WeeklyReporter{
		sellers:   sellers,
		reports:   reports,
		notifier:  notifier,
		printer:   printer,
		adminChat: adminChat,
		log:       log,
		now:       time.Now,
	}
}

// WeeklyPeriod rango [hoy-7d, hoy] en formato YYYY-MM-DD.
func WeeklyPeriod(now time.Time) (string, string) {
	return now.Add(-weeklyWindow).Format("2006-01-02"), now.Format("2006-01-02")
}

// SendAll genera y envía el reporte de cada vendedor; los errores por
// vendedor se registran y no detienen el recorrido.
func (w *WeeklyReporter) SendAll(ctx context.Context) error {
	sellers, err := w.sellers.List(ctx)
	if err != nil {
		return fmt.Errorf("notify: listar vendedores: %w", err)
	}
	if len(sellers) == 0 {
		w.log.Warn().Msg("reporte semanal sin vendedores registrados")
		return nil
	}
	from, to := WeeklyPeriod(w.now())
	for _, s := range sellers {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := w.send(ctx, s, from, to); err != nil {
			w.log.Error().Err(err).Int64("seller_id", s.ID).Msg("reporte semanal fallido")
		}
	}
	return nil
}

func (w *WeeklyReporter) send(ctx context.Context, s entity.Seller, from, to string) error {
	chat := s.ChatID
	if chat == "" {
		chat = w.adminChat
	}
	if chat == "" {
		return errors.New("notify: vendedor sin chat y sin chat de administración")
	}

	res, err := w.reports.Generate(ctx, s.ID, from, to)
	if errors.Is(err, domain.ErrNoData) {
		return w.notifier.SendMessage(ctx, chat, w.printer.T(i18n.WeeklyNoData, from, to))
	}
	if err != nil {
		return err
	}

	text := w.printer.T(i18n.WeeklyHeader, from, to) + "\n" + res.Text
	for _, f := range res.Failures {
		text += "\n" + w.printer.T(i18n.ReportFailed, w.printer.T(artifactName(f.Kind)))
	}
	if err := w.notifier.SendMessage(ctx, chat, text); err != nil {
		return err
	}
	for _, kind := range []report.ArtifactKind{report.ArtifactSpreadsheet, report.ArtifactChart} {
		art, ok := res.Artifact(kind)
		if !ok {
			continue
		}
		if err := w.notifier.SendDocument(ctx, chat, art.Name, art.Data, ""); err != nil {
			w.log.Error().Err(err).Int64("seller_id", s.ID).Str("artifact", string(kind)).Msg("no se pudo enviar el archivo")
		}
	}
	return nil
}

func artifactName(kind report.ArtifactKind) i18n.Key {
	switch kind {
	case report.ArtifactSpreadsheet:
		return i18n.ArtifactSpreadsheetName
	case report.ArtifactChart:
		return i18n.ArtifactChartName
	case report.ArtifactPDF:
		return i18n.ArtifactPDFName
	default:
		return i18n.Key(kind)
	}
}
