package dto

import "time"

// RegisterSellerRequest alta (o reemplazo) de un vendedor.
type RegisterSellerRequest struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	WBToken  string `json:"wb_token"`
	ChatID   string `json:"chat_id"`
}

// SellerResponse datos públicos del vendedor (el token nunca sale).
type SellerResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	ChatID    string    `json:"chat_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterSellerResponse token de acceso a la API más el vendedor.
type RegisterSellerResponse struct {
	Token  string         `json:"token"`
	Seller SellerResponse `json:"seller"`
}
