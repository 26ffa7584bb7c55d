package repository

import (
	"context"

	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
)

// SellerRepository puerto de persistencia de vendedores registrados.
type SellerRepository interface {
	// Save crea o reemplaza el vendedor.
	Save(ctx context.Context, seller entity.Seller) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Seller, error)
	List(ctx context.Context) ([]entity.Seller, error)
	Delete(ctx context.Context, id int64) error
}
