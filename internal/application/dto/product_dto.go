package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
)

// SetCostRequest entrada para declarar el costo de compra de un artículo.
type SetCostRequest struct {
	Cost decimal.Decimal `json:"cost"`
}

// UpsertProductRequest entrada completa de un artículo del registro.
type UpsertProductRequest struct {
	Name     string          `json:"name"`
	Cost     decimal.Decimal `json:"cost"`
	NmID     *int64          `json:"nm_id"`
	Category string          `json:"category"`
}

// ProductResponse salida de una entrada del registro de costos.
type ProductResponse struct {
	Article      string          `json:"article"`
	Name         string          `json:"name"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	HasCost      bool            `json:"has_cost"`
	NmID         *int64          `json:"nm_id,omitempty"`
	Category     string          `json:"category,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada del registro.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ImportCostsResponse resultado de una importación CSV.
type ImportCostsResponse struct {
	Updated int           `json:"updated"`
	Errors  []ImportError `json:"errors"`
}

// ImportError línea rechazada del CSV.
type ImportError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// SyncCatalogResponse cantidad de tarjetas sembradas desde el catálogo.
type SyncCatalogResponse struct {
	Seeded int `json:"seeded"`
}

// ToProductResponse mapea la entrada de dominio.
func ToProductResponse(e entity.ProductCostEntry) ProductResponse {
	return ProductResponse{
		Article:      e.Article,
		Name:         e.Name,
		PurchaseCost: e.PurchaseCost,
		HasCost:      e.HasCost(),
		NmID:         e.NmID,
		Category:     e.Category,
		UpdatedAt:    e.UpdatedAt,
	}
}
