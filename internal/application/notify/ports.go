package notify

import (
	"context"

	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
)

// OrderSource órdenes nuevas y tarjetas del marketplace.
type OrderSource interface {
	NewOrders(ctx context.Context, token string) ([]entity.NewOrder, error)
	CardByArticle(ctx context.Context, token, article string) (*entity.CatalogCard, error)
}

// SentOrderStore recuerda qué órdenes ya se notificaron.
type SentOrderStore interface {
	Seen(ctx context.Context, sellerID int64, orderID string) (bool, error)
	Mark(ctx context.Context, sellerID int64, orderID string) error
}

// Notifier canal de mensajería hacia el vendedor.
type Notifier interface {
	SendMessage(ctx context.Context, chatID, text string) error
	SendDocument(ctx context.Context, chatID, fileName string, data []byte, caption string) error
}

// Recorder métricas de notificaciones.
type Recorder interface {
	OrderNotified()
	OrderNotifyFailed()
}

type nopRecorder struct{}

func (nopRecorder) OrderNotified()     {}
func (nopRecorder) OrderNotifyFailed() {}
