package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/text/language"

	"github.com/DenisZev/wildberries-bot/internal/application/auth"
	"github.com/DenisZev/wildberries-bot/internal/application/costs"
	"github.com/DenisZev/wildberries-bot/internal/application/notify"
	"github.com/DenisZev/wildberries-bot/internal/application/report"
	"github.com/DenisZev/wildberries-bot/internal/domain/repository"
	"github.com/DenisZev/wildberries-bot/internal/i18n"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/cache"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/chart"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/memory"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/metrics"
	infrapdf "github.com/DenisZev/wildberries-bot/internal/infrastructure/pdf"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/postgres"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/scheduler"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/secret"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/storage"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/telegram"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/wildberries"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/xlsx"
	httpRouter "github.com/DenisZev/wildberries-bot/internal/interfaces/http"
	"github.com/DenisZev/wildberries-bot/pkg/config"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("locale", cfg.Report.Locale).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Registros: PostgreSQL si está configurado, memoria si no.
	var (
		sellerRepo  repository.SellerRepository
		productRepo repository.ProductRepository
		costOpts    []costs.Option
	)
	if cfg.DB.Enabled() {
		if cfg.DB.AutoMigrate {
			if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		box, err := secret.NewBox(cfg.Security.TokenKey)
		if err != nil {
			log.Fatal().Err(err).Msg("llave de cifrado de tokens")
		}
		sellerRepo = postgres.NewSellerRepository(pool, box)
		productRepo = postgres.NewProductRepository(pool)
		costOpts = append(costOpts, costs.WithTxRunner(postgres.NewTxRunner(pool)))
	} else {
		log.Warn().Msg("sin base de datos: vendedores y costos en memoria")
		sellerRepo = memory.NewSellerRepository()
		productRepo = memory.NewProductRepository()
	}

	wb := wildberries.NewClient(wildberries.Config{
		StatisticsURL:  cfg.WB.StatisticsURL,
		MarketplaceURL: cfg.WB.MarketplaceURL,
		ContentURL:     cfg.WB.ContentURL,
		Timeout:        cfg.WB.Timeout,
		RatePerMinute:  cfg.WB.RatePerMinute,
	}, log)

	reg := metrics.New()
	printer := i18n.NewPrinter(i18n.Parse(cfg.Report.Locale))

	costSvc := costs.NewService(productRepo, sellerRepo, wb, log, costOpts...)

	// El PDF usa fuentes base Latin-1: siempre en inglés.
	renderers := []report.ArtifactRenderer{
		xlsx.NewRenderer(printer),
		chart.NewRenderer(printer),
		infrapdf.NewSummaryRenderer(i18n.NewPrinter(language.English)),
	}
	reportOpts := []report.Option{report.WithRecorder(reg)}
	switch cfg.Report.StorageDriver {
	case "local":
		store, err := storage.NewLocalStore(cfg.Report.OutputDir)
		if err != nil {
			log.Fatal().Err(err).Msg("directorio de reportes")
		}
		reportOpts = append(reportOpts, report.WithStore(store))
	case "s3":
		s3cfg := cfg.Report.S3
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:            s3cfg.Bucket,
			Region:            s3cfg.Region,
			Endpoint:          s3cfg.Endpoint,
			AccessKey:         s3cfg.AccessKey,
			SecretKey:         s3cfg.SecretKey,
			UsePathStyle:      s3cfg.UsePathStyle,
			PresignExpiration: s3cfg.PresignExpiration,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento S3")
		}
		reportOpts = append(reportOpts, report.WithStore(store))
	}
	reportUC := report.NewReportUseCase(sellerRepo, wb, costSvc, printer, renderers, log, reportOpts...)

	// Órdenes ya avisadas: Redis si está configurado (varias instancias), memoria si no.
	var sent notify.SentOrderStore
	if cfg.Redis.Addr != "" {
		redisStore, err := cache.NewRedisSentStore(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Scheduler.SentOrderTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisStore.Close()
		sent = redisStore
	} else {
		sent = cache.NewMemorySentStore(cfg.Scheduler.SentOrderTTL, cfg.Scheduler.SentOrderLimit)
	}

	var bot notify.Notifier
	if cfg.Telegram.BotToken != "" {
		bot = telegram.NewBot(cfg.Telegram.BotToken, cfg.Telegram.APIURL)
	}
	orderNotifier := notify.NewOrderNotifier(sellerRepo, wb, sent, bot, printer, reg, log)
	weekly := notify.NewWeeklyReporter(sellerRepo, reportUC, bot, printer, cfg.Telegram.AdminChat, log)

	sched := scheduler.New(log)
	switch {
	case !cfg.Scheduler.Enabled:
		log.Info().Msg("scheduler deshabilitado")
	case bot == nil:
		log.Warn().Msg("sin TELEGRAM_BOT_TOKEN: no se programan avisos ni reportes semanales")
	default:
		sched.Every("new_orders", cfg.Scheduler.OrderInterval, cfg.Scheduler.OrderTimeout, func(ctx context.Context) error {
			_, err := orderNotifier.CheckNewOrders(ctx)
			return err
		})
		sched.Weekly("weekly_report", cfg.Scheduler.WeeklyDay, cfg.Scheduler.WeeklyHour, cfg.Scheduler.WeeklyMinute,
			cfg.Scheduler.Location(), cfg.Scheduler.WeeklyTimeout, weekly.SendAll)
		sched.Start(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 120,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    6 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware(reg))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Wildberries Bot API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SellerUC: auth.NewSellerUseCase(sellerRepo, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}, cfg.Security.RegistrationKey, log),
		Reports:        reportUC,
		Costs:          costSvc,
		Orders:         orderNotifier,
		MetricsHandler: reg.Handler(),
		JWTSecret:      cfg.JWT.Secret,
		Log:            log,
	})

	if cfg.HTTP.Enabled {
		go func() {
			if err := app.Listen(cfg.HTTP.Addr()); err != nil {
				log.Error().Err(err).Msg("servidor HTTP finalizado")
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
