package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
)

// ProductRepository puerto del registro de costos por (vendedor, artículo).
// Los artículos llegan ya normalizados a minúsculas.
// Las escrituras sobre una misma clave deben quedar serializadas.
type ProductRepository interface {
	// Get devuelve la entrada o (nil, nil) si no existe.
	Get(ctx context.Context, sellerID int64, article string) (*entity.ProductCostEntry, error)
	// Upsert reemplaza la entrada completa.
	Upsert(ctx context.Context, entry entity.ProductCostEntry) error
	// SetCost fija el costo conservando los metadatos; crea la entrada con nombre = artículo si no existe.
	SetCost(ctx context.Context, sellerID int64, article string, cost decimal.Decimal) error
	// SeedCatalog inserta o actualiza metadatos sin tocar costos existentes; los nuevos inician en 0.
	SeedCatalog(ctx context.Context, sellerID int64, entries []entity.ProductCostEntry) error
	ListBySeller(ctx context.Context, sellerID int64) ([]entity.ProductCostEntry, error)
}
