// Package memory implementa los puertos de persistencia en memoria. Se usa
// en desarrollo, en la CLI y en pruebas.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type productKey struct {
	sellerID int64
	article  string
}

// ProductRepo registro de costos protegido por RWMutex: lecturas concurrentes,
// escrituras serializadas.
type ProductRepo struct {
	mu    sync.RWMutex
	items map[productKey]entity.ProductCostEntry
	now   func() time.Time
}

// NewProductRepository construye el registro vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{items: make(map[productKey]entity.ProductCostEntry), now: time.Now}
}

func (r *ProductRepo) Get(_ context.Context, sellerID int64, article string) (*entity.ProductCostEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.items[productKey{sellerID, article}]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *ProductRepo) Upsert(_ context.Context, entry entity.ProductCostEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.UpdatedAt = r.now()
	r.items[productKey{entry.SellerID, entry.Article}] = entry
	return nil
}

func (r *ProductRepo) SetCost(_ context.Context, sellerID int64, article string, cost decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := productKey{sellerID, article}
	e, ok := r.items[k]
	if !ok {
		e = entity.ProductCostEntry{SellerID: sellerID, Article: article, Name: article}
	}
	e.PurchaseCost = cost
	e.UpdatedAt = r.now()
	r.items[k] = e
	return nil
}

// SeedCatalog aplica todo el lote bajo un único lock.
func (r *ProductRepo) SeedCatalog(_ context.Context, sellerID int64, entries []entity.ProductCostEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for _, in := range entries {
		k := productKey{sellerID, in.Article}
		cost := decimal.Zero
		if prev, ok := r.items[k]; ok {
			cost = prev.PurchaseCost
		}
		in.SellerID = sellerID
		in.PurchaseCost = cost
		in.UpdatedAt = now
		r.items[k] = in
	}
	return nil
}

// ListBySeller devuelve las entradas ordenadas por artículo.
func (r *ProductRepo) ListBySeller(_ context.Context, sellerID int64) ([]entity.ProductCostEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.ProductCostEntry, 0)
	for k, e := range r.items {
		if k.sellerID == sellerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Article < out[j].Article })
	return out, nil
}
