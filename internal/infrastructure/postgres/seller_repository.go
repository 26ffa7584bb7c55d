package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/repository"
)

var _ repository.SellerRepository = (*SellerRepo)(nil)

// TokenCipher cifra el token del marketplace antes de persistirlo.
type TokenCipher interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

// SellerRepo vendedores sobre PostgreSQL.
type SellerRepo struct {
	q      Querier
	cipher TokenCipher
}

// NewSellerRepository construye el adaptador.
func NewSellerRepository(q Querier, cipher TokenCipher) *SellerRepo {
	return &SellerRepo{q: q, cipher: cipher}
}

func (r *SellerRepo) Save(ctx context.Context, s entity.Seller) error {
	sealed, err := r.cipher.Seal(s.WBToken)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	query := `
		INSERT INTO sellers (id, username, wb_token, chat_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			wb_token = EXCLUDED.wb_token,
			chat_id = EXCLUDED.chat_id`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Username, sealed, s.ChatID); err != nil {
		return fmt.Errorf("save seller: %w", err)
	}
	return nil
}

func (r *SellerRepo) GetByID(ctx context.Context, id int64) (*entity.Seller, error) {
	query := `SELECT id, username, wb_token, chat_id, created_at FROM sellers WHERE id = $1`
	s, err := r.scan(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller: %w", err)
	}
	return s, nil
}

func (r *SellerRepo) List(ctx context.Context) ([]entity.Seller, error) {
	rows, err := r.q.Query(ctx, `SELECT id, username, wb_token, chat_id, created_at FROM sellers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()

	var list []entity.Seller
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seller: %w", err)
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

func (r *SellerRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sellers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete seller: %w", err)
	}
	return nil
}

func (r *SellerRepo) scan(row pgx.Row) (*entity.Seller, error) {
	var s entity.Seller
	var sealed string
	if err := row.Scan(&s.ID, &s.Username, &sealed, &s.ChatID, &s.CreatedAt); err != nil {
		return nil, err
	}
	token, err := r.cipher.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("open token of seller %d: %w", s.ID, err)
	}
	s.WBToken = token
	return &s, nil
}
