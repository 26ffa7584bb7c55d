package entity

import "github.com/DenisZev/wildberries-bot/internal/domain/money"

// NewOrder orden de ensamble recién creada en el marketplace.
type NewOrder struct {
	ID        string
	Article   string
	NmID      int64
	ChrtID    int64
	SKUs      []string
	SalePrice money.Cents // el marketplace envía el precio en kopeks
	CreatedAt string
}
