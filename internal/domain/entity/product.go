package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductCostEntry costo de compra declarado por el vendedor para un artículo.
// La clave es (SellerID, Article en minúsculas).
type ProductCostEntry struct {
	SellerID     int64
	Article      string
	Name         string
	PurchaseCost decimal.Decimal // 0 si el vendedor aún no lo declaró
	NmID         *int64          // identificador numérico del marketplace
	Category     string
	UpdatedAt    time.Time
}

// PlaceholderCost entrada de reemplazo cuando no existe registro: costo 0 y sin metadatos.
func PlaceholderCost(sellerID int64, article string) ProductCostEntry {
	return ProductCostEntry{SellerID: sellerID, Article: NormalizeArticle(article), PurchaseCost: decimal.Zero}
}

// HasCost indica si el vendedor declaró un costo positivo.
func (p ProductCostEntry) HasCost() bool { return p.PurchaseCost.IsPositive() }

// NormalizeArticle normaliza el código de artículo para búsquedas (minúsculas, sin espacios).
func NormalizeArticle(article string) string {
	return strings.ToLower(strings.TrimSpace(article))
}

// CatalogCard tarjeta de producto del catálogo del marketplace.
type CatalogCard struct {
	NmID       int64
	VendorCode string
	Title      string
	Brand      string
	Subject    string
	Photo      string
	Sizes      []CardSize
}

// CardSize talla de una tarjeta con sus códigos de barras.
type CardSize struct {
	ChrtID int64
	WBSize string
	SKUs   []string
}
