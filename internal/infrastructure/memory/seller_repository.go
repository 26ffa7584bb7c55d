package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/repository"
)

var _ repository.SellerRepository = (*SellerRepo)(nil)

// SellerRepo vendedores en memoria.
type SellerRepo struct {
	mu      sync.RWMutex
	sellers map[int64]entity.Seller
}

func NewSellerRepository() *SellerRepo {
	return &SellerRepo{sellers: make(map[int64]entity.Seller)}
}

func (r *SellerRepo) Save(_ context.Context, s entity.Seller) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.sellers[s.ID]; ok && s.CreatedAt.IsZero() {
		s.CreatedAt = prev.CreatedAt
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	r.sellers[s.ID] = s
	return nil
}

func (r *SellerRepo) GetByID(_ context.Context, id int64) (*entity.Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sellers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SellerRepo) List(_ context.Context) ([]entity.Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Seller, 0, len(r.sellers))
	for _, s := range r.sellers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SellerRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sellers, id)
	return nil
}
