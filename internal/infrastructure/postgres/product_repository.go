package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo registro de costos sobre PostgreSQL (usable con pool o tx).
// La unicidad (seller_id, article) y los INSERT … ON CONFLICT serializan las
// escrituras concurrentes sobre una misma clave.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `seller_id, article, name, purchase_cost, nm_id, category, updated_at`

func (r *ProductRepo) Get(ctx context.Context, sellerID int64, article string) (*entity.ProductCostEntry, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE seller_id = $1 AND article = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, sellerID, article))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Upsert(ctx context.Context, e entity.ProductCostEntry) error {
	query := `
		INSERT INTO products (seller_id, article, name, purchase_cost, nm_id, category, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (seller_id, article) DO UPDATE SET
			name = EXCLUDED.name,
			purchase_cost = EXCLUDED.purchase_cost,
			nm_id = EXCLUDED.nm_id,
			category = EXCLUDED.category,
			updated_at = NOW()`
	if _, err := r.q.Exec(ctx, query, e.SellerID, e.Article, e.Name, e.PurchaseCost, e.NmID, e.Category); err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) SetCost(ctx context.Context, sellerID int64, article string, cost decimal.Decimal) error {
	query := `
		INSERT INTO products (seller_id, article, name, purchase_cost, updated_at)
		VALUES ($1, $2, $2, $3, NOW())
		ON CONFLICT (seller_id, article) DO UPDATE SET
			purchase_cost = EXCLUDED.purchase_cost,
			updated_at = NOW()`
	if _, err := r.q.Exec(ctx, query, sellerID, article, cost); err != nil {
		return fmt.Errorf("set product cost: %w", err)
	}
	return nil
}

// SeedCatalog envía el lote en un pgx.Batch; purchase_cost no se toca en el UPDATE.
func (r *ProductRepo) SeedCatalog(ctx context.Context, sellerID int64, entries []entity.ProductCostEntry) error {
	query := `
		INSERT INTO products (seller_id, article, name, purchase_cost, nm_id, category, updated_at)
		VALUES ($1, $2, $3, 0, $4, $5, NOW())
		ON CONFLICT (seller_id, article) DO UPDATE SET
			name = EXCLUDED.name,
			nm_id = EXCLUDED.nm_id,
			category = EXCLUDED.category,
			updated_at = NOW()`
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query, sellerID, e.Article, e.Name, e.NmID, e.Category)
	}
	br, ok := r.q.(batchSender)
	if !ok {
		for _, e := range entries {
			if _, err := r.q.Exec(ctx, query, sellerID, e.Article, e.Name, e.NmID, e.Category); err != nil {
				return fmt.Errorf("seed product %q: %w", e.Article, err)
			}
		}
		return nil
	}
	if err := br.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

func (r *ProductRepo) ListBySeller(ctx context.Context, sellerID int64) ([]entity.ProductCostEntry, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE seller_id = $1 ORDER BY article`
	rows, err := r.q.Query(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []entity.ProductCostEntry
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

func scanProduct(row pgx.Row) (*entity.ProductCostEntry, error) {
	var p entity.ProductCostEntry
	var category *string
	if err := row.Scan(&p.SellerID, &p.Article, &p.Name, &p.PurchaseCost, &p.NmID, &category, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if category != nil {
		p.Category = *category
	}
	return &p, nil
}
