package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/DenisZev/wildberries-bot/internal/application/dto"
	"github.com/DenisZev/wildberries-bot/internal/application/notify"
	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

var formatKinds = map[string]report.ArtifactKind{
	"xlsx": report.ArtifactSpreadsheet,
	"png":  report.ArtifactChart,
	"pdf":  report.ArtifactPDF,
}

// ReportHandler reportes de ventas (protegido).
type ReportHandler struct {
	uc  *report.ReportUseCase
	now func() time.Time
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, now: time.Now, log: log}
}

// Sales godoc
// @Summary      Reporte de ventas del período
// @Description  Sin fechas se usan los últimos 7 días. Con format se descarga el archivo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date_from  query  string  false  "YYYY-MM-DD"
// @Param        date_to    query  string  false  "YYYY-MM-DD"
// @Param        format     query  string  false  "xlsx | png | pdf"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	sellerID := GetSellerID(c)
	if sellerID == 0 {
		return unauthorized(c)
	}
	from, to := c.Query("date_from"), c.Query("date_to")
	if from == "" && to == "" {
		from, to = notify.WeeklyPeriod(h.now())
	}
	format := c.Query("format")
	kind, ok := formatKinds[format]
	if format != "" && !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser xlsx, png o pdf"})
	}

	res, err := h.uc.Generate(c.UserContext(), sellerID, from, to)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if format == "" {
		return c.JSON(toSalesReportResponse(res))
	}

	art, found := res.Artifact(kind)
	if !found {
		for _, f := range res.Failures {
			if f.Kind == kind {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "ARTIFACT_FAILED", Message: f.Error})
			}
		}
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ARTIFACT_EMPTY", Message: "no hay datos para generar el archivo"})
	}
	c.Attachment(art.Name)
	c.Set(fiber.HeaderContentType, art.ContentType)
	return c.Send(art.Data)
}

func toSalesReportResponse(res *report.ReportResult) dto.SalesReportResponse {
	m := res.Metrics
	out := dto.SalesReportResponse{
		RunID:    res.RunID,
		DateFrom: res.Period.From,
		DateTo:   res.Period.To,
		Text:     res.Text,
		Metrics: dto.ReportMetricsDTO{
			TotalSales:      m.TotalSales,
			ItemsSold:       m.ItemsSold,
			TotalReturns:    m.TotalReturns,
			TotalRevenue:    m.TotalRevenue.Decimal(),
			TotalCommission: m.TotalCommission.Decimal(),
			TotalDelivery:   m.TotalDelivery.Decimal(),
			TotalCost:       m.TotalCost.Decimal(),
			TotalProfit:     m.TotalProfit.Decimal(),
			AvgSale:         m.AvgSale.Decimal(),
			MissingCost:     append([]string{}, m.MissingCost...),
			TopProducts:     []dto.TopProductDTO{},
		},
		Artifacts: []dto.ArtifactDTO{},
	}
	for _, tp := range m.TopProducts {
		out.Metrics.TopProducts = append(out.Metrics.TopProducts, dto.TopProductDTO{Article: tp.Article, Count: tp.Count})
	}
	for _, a := range res.Artifacts {
		out.Artifacts = append(out.Artifacts, dto.ArtifactDTO{
			Kind:        string(a.Kind),
			Name:        a.Name,
			ContentType: a.ContentType,
			Size:        len(a.Data),
			Location:    a.Location,
		})
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, dto.ArtifactFailDTO{Kind: string(f.Kind), Error: f.Error})
	}
	return out
}
