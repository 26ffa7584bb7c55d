// import_costs carga costos de compra desde un CSV (artículo,costo) para un vendedor.
//
// Uso: go run ./cmd/import_costs -seller 123456 -file costos.csv [-sync]
// Acepta UTF-8 (con o sin BOM) o Windows-1251, separado por coma o punto y coma.
// Con -sync primero siembra el registro desde el catálogo del marketplace.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/DenisZev/wildberries-bot/internal/application/costs"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/postgres"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/secret"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/wildberries"
	"github.com/DenisZev/wildberries-bot/pkg/config"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

func main() {
	sellerID := flag.Int64("seller", 0, "ID del vendedor")
	path := flag.String("file", "", "ruta del CSV")
	sync := flag.Bool("sync", false, "sembrar desde el catálogo antes de importar")
	flag.Parse()

	if *sellerID <= 0 || *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if !cfg.DB.Enabled() {
		fmt.Fprintln(os.Stderr, "Defina DATABASE_URL o DB_HOST")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	box, err := secret.NewBox(cfg.Security.TokenKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Llave de cifrado: %v\n", err)
		os.Exit(1)
	}
	wb := wildberries.NewClient(wildberries.Config{
		StatisticsURL:  cfg.WB.StatisticsURL,
		MarketplaceURL: cfg.WB.MarketplaceURL,
		ContentURL:     cfg.WB.ContentURL,
		Timeout:        cfg.WB.Timeout,
		RatePerMinute:  cfg.WB.RatePerMinute,
	}, log)
	svc := costs.NewService(
		postgres.NewProductRepository(pool),
		postgres.NewSellerRepository(pool, box),
		wb, log,
		costs.WithTxRunner(postgres.NewTxRunner(pool)),
	)

	if *sync {
		n, err := svc.SyncCatalog(ctx, *sellerID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Sincronizar catálogo: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Catálogo: %d artículos\n", n)
	}

	f, err := os.Open(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	res, err := svc.ImportCosts(ctx, *sellerID, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Importar: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Actualizados: %d\n", res.Updated)
	for _, e := range res.Errors {
		fmt.Printf("  línea %d: %s\n", e.Line, e.Reason)
	}
	if len(res.Errors) > 0 {
		os.Exit(3)
	}
}
