// Package costs administra el registro de costos de compra por vendedor y
// artículo: resolución para los reportes, declaración manual, importación
// desde CSV y siembra desde el catálogo del marketplace.
package costs

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DenisZev/wildberries-bot/internal/domain"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/repository"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

const defaultCardName = "Unknown"

// CatalogSource descarga las tarjetas de producto del vendedor.
type CatalogSource interface {
	Cards(ctx context.Context, token string) ([]entity.CatalogCard, error)
}

// TxRunner ejecuta fn con un registro atado a una transacción.
type TxRunner interface {
	RunProducts(ctx context.Context, fn func(products repository.ProductRepository) error) error
}

// directRunner ejecuta fn sobre el registro sin transacción (registro en memoria).
type directRunner struct {
	products repository.ProductRepository
}

func (d directRunner) RunProducts(ctx context.Context, fn func(repository.ProductRepository) error) error {
	return fn(d.products)
}

// Service casos de uso del registro de costos.
type Service struct {
	products repository.ProductRepository
	sellers  repository.SellerRepository
	catalog  CatalogSource
	tx       TxRunner
	log      *logger.Logger
}

// Option ajusta el servicio.
type Option func(*Service)

// WithTxRunner hace que las importaciones se apliquen de forma atómica.
func WithTxRunner(tx TxRunner) Option {
	return func(s *Service) { s.tx = tx }
}

// NewService construye el servicio. catalog puede ser nil si no se sincroniza.
func NewService(products repository.ProductRepository, sellers repository.SellerRepository, catalog CatalogSource, log *logger.Logger, opts ...Option) *Service {
	s := &Service{products: products, sellers: sellers, catalog: catalog, tx: directRunner{products}, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve devuelve la entrada registrada o el reemplazo con costo 0.
// La ausencia no es error; solo falla el almacenamiento.
func (s *Service) Resolve(ctx context.Context, sellerID int64, article string) (entity.ProductCostEntry, error) {
	key := entity.NormalizeArticle(article)
	entry, err := s.products.Get(ctx, sellerID, key)
	if err != nil {
		return entity.ProductCostEntry{}, fmt.Errorf("costs: buscar %q: %w", key, err)
	}
	if entry == nil {
		return entity.PlaceholderCost(sellerID, key), nil
	}
	return *entry, nil
}

// SeedFromCatalog registra una entrada por tarjeta. Los costos ya declarados
// se conservan; los artículos nuevos inician en 0. Devuelve cuántos artículos
// distintos se sembraron.
func (s *Service) SeedFromCatalog(ctx context.Context, sellerID int64, cards []entity.CatalogCard) (int, error) {
	idx := make(map[string]int, len(cards))
	entries := make([]entity.ProductCostEntry, 0, len(cards))
	for _, c := range cards {
		article := entity.NormalizeArticle(c.VendorCode)
		if article == "" {
			article = entity.NormalizeArticle(defaultCardName)
		}
		name := c.Title
		if name == "" {
			name = defaultCardName
		}
		nmID := c.NmID
		e := entity.ProductCostEntry{
			SellerID:     sellerID,
			Article:      article,
			Name:         name,
			PurchaseCost: decimal.Zero,
			NmID:         &nmID,
			Category:     c.Subject,
		}
		// la última tarjeta del lote gana
		if i, ok := idx[article]; ok {
			entries[i] = e
			continue
		}
		idx[article] = len(entries)
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return 0, nil
	}
	if err := s.products.SeedCatalog(ctx, sellerID, entries); err != nil {
		return 0, fmt.Errorf("costs: sembrar catálogo: %w", err)
	}
	return len(entries), nil
}

// DeclareCost fija el costo de compra de un artículo (≥ 0).
func (s *Service) DeclareCost(ctx context.Context, sellerID int64, article string, cost decimal.Decimal) (*entity.ProductCostEntry, error) {
	key := entity.NormalizeArticle(article)
	if key == "" {
		return nil, fmt.Errorf("%w: artículo vacío", domain.ErrInvalidInput)
	}
	if cost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidInput)
	}
	if err := s.products.SetCost(ctx, sellerID, key, cost); err != nil {
		return nil, fmt.Errorf("costs: fijar costo de %q: %w", key, err)
	}
	entry, err := s.products.Get(ctx, sellerID, key)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// ProductInput datos completos de una entrada del registro.
type ProductInput struct {
	Name     string
	Cost     decimal.Decimal
	NmID     *int64
	Category string
}

// SaveProduct reemplaza la entrada completa del artículo (nombre, costo,
// nmID y categoría). Sin nombre se usa el artículo.
func (s *Service) SaveProduct(ctx context.Context, sellerID int64, article string, in ProductInput) (*entity.ProductCostEntry, error) {
	key := entity.NormalizeArticle(article)
	if key == "" {
		return nil, fmt.Errorf("%w: artículo vacío", domain.ErrInvalidInput)
	}
	if in.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidInput)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = key
	}
	e := entity.ProductCostEntry{
		SellerID:     sellerID,
		Article:      key,
		Name:         name,
		PurchaseCost: in.Cost,
		NmID:         in.NmID,
		Category:     strings.TrimSpace(in.Category),
	}
	if err := s.products.Upsert(ctx, e); err != nil {
		return nil, fmt.Errorf("costs: guardar %q: %w", key, err)
	}
	saved, err := s.products.Get(ctx, sellerID, key)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, domain.ErrNotFound
	}
	return saved, nil
}

// ImportResult resumen de una importación.
type ImportResult struct {
	Updated int         `json:"updated"`
	Errors  []LineError `json:"errors,omitempty"`
}

// ImportCosts aplica un CSV de costos. Las filas inválidas se reportan y no
// detienen la importación; un fallo del almacenamiento la revierte completa.
func (s *Service) ImportCosts(ctx context.Context, sellerID int64, r io.Reader) (*ImportResult, error) {
	rows, badRows, err := ParseCostCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	res := &ImportResult{Errors: badRows}
	err = s.tx.RunProducts(ctx, func(products repository.ProductRepository) error {
		for _, row := range rows {
			if err := products.SetCost(ctx, sellerID, entity.NormalizeArticle(row.Article), row.Cost); err != nil {
				return fmt.Errorf("costs: línea %d: %w", row.Line, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Updated = len(rows)
	s.log.Info().
		Int64("seller_id", sellerID).
		Int("updated", res.Updated).
		Int("rejected", len(res.Errors)).
		Msg("costos importados")
	return res, nil
}

// SyncCatalog descarga el catálogo del marketplace y lo siembra.
func (s *Service) SyncCatalog(ctx context.Context, sellerID int64) (int, error) {
	if s.catalog == nil {
		return 0, fmt.Errorf("costs: catálogo no configurado")
	}
	seller, err := s.sellers.GetByID(ctx, sellerID)
	if err != nil {
		return 0, err
	}
	if seller == nil {
		return 0, domain.ErrNotFound
	}
	cards, err := s.catalog.Cards(ctx, seller.WBToken)
	if err != nil {
		return 0, fmt.Errorf("costs: descargar catálogo: %w", err)
	}
	n, err := s.SeedFromCatalog(ctx, sellerID, cards)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("seller_id", sellerID).Int("cards", len(cards)).Int("articles", n).Msg("catálogo sincronizado")
	return n, nil
}

// List devuelve el registro del vendedor.
func (s *Service) List(ctx context.Context, sellerID int64) ([]entity.ProductCostEntry, error) {
	return s.products.ListBySeller(ctx, sellerID)
}
