package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/DenisZev/wildberries-bot/internal/application/auth"
	"github.com/DenisZev/wildberries-bot/internal/application/costs"
	"github.com/DenisZev/wildberries-bot/internal/application/notify"
	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SellerUC       *auth.SellerUseCase
	Reports        *report.ReportUseCase
	Costs          *costs.Service
	Orders         *notify.OrderNotifier
	MetricsHandler http.Handler // nil = sin /metrics
	JWTSecret      string
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Registro (público, opcionalmente con llave)
	sellerHandler := NewSellerHandler(deps.SellerUC, deps.Log)
	api.Post("/sellers/register", sellerHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	sellers := protected.Group("/sellers")
	sellers.Get("/me", sellerHandler.Me)
	sellers.Delete("/me", sellerHandler.Remove)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports, deps.Log)
	reports.Get("/sales", reportHandler.Sales)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Costs, deps.Log)
	products.Get("/", productHandler.List)
	products.Put("/:article", productHandler.Upsert)
	products.Put("/:article/cost", productHandler.SetCost)
	products.Post("/import", productHandler.Import)
	products.Post("/sync", productHandler.Sync)

	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.Orders, deps.Log)
	orders.Get("/new", orderHandler.New)
}
