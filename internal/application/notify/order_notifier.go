// Package notify avisa a los vendedores de sus órdenes nuevas.
package notify

import (
	"context"
	"fmt"

	"github.com/DenisZev/wildberries-bot/internal/domain"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/repository"
	"github.com/DenisZev/wildberries-bot/internal/i18n"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

// OrderNotifier revisa las órdenes nuevas de cada vendedor y envía un aviso
// por orden. Las órdenes ya avisadas se saltan.
type OrderNotifier struct {
	sellers  repository.SellerRepository
	source   OrderSource
	sent     SentOrderStore
	notifier Notifier
	printer  *i18n.Printer
	recorder Recorder
	log      *logger.Logger
}

// NewOrderNotifier construye el caso de uso. recorder puede ser nil.
func NewOrderNotifier(
	sellers repository.SellerRepository,
	source OrderSource,
	sent SentOrderStore,
	notifier Notifier,
	printer *i18n.Printer,
	recorder Recorder,
	log *logger.Logger,
) *OrderNotifier {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &OrderNotifier{
		sellers:  sellers,
		source:   source,
		sent:     sent,
		notifier: notifier,
		printer:  printer,
		recorder: recorder,
		log:      log,
	}
}

// CheckNewOrders recorre todos los vendedores. El fallo de uno se registra y
// no detiene a los demás. Devuelve cuántos avisos se enviaron.
func (n *OrderNotifier) CheckNewOrders(ctx context.Context) (int, error) {
	sellers, err := n.sellers.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("notify: listar vendedores: %w", err)
	}
	total := 0
	for _, s := range sellers {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
		sent, err := n.CheckSeller(ctx, s)
		total += sent
		if err != nil {
			n.log.Error().Err(err).Int64("seller_id", s.ID).Msg("error al revisar órdenes")
		}
	}
	return total, nil
}

// CheckSeller avisa las órdenes nuevas de un vendedor.
func (n *OrderNotifier) CheckSeller(ctx context.Context, s entity.Seller) (int, error) {
	orders, err := n.source.NewOrders(ctx, s.WBToken)
	if err != nil {
		return 0, fmt.Errorf("notify: órdenes nuevas: %w", err)
	}
	sent := 0
	for _, o := range orders {
		seen, err := n.sent.Seen(ctx, s.ID, o.ID)
		if err != nil {
			return sent, err
		}
		if seen {
			continue
		}

		card, err := n.source.CardByArticle(ctx, s.WBToken, o.Article)
		if err != nil {
			// el aviso sale igual, sin los datos de la tarjeta
			n.log.Warn().Err(err).Int64("seller_id", s.ID).Str("order_id", o.ID).Msg("tarjeta no disponible")
			card = nil
		}

		if err := n.notifier.SendMessage(ctx, s.ChatID, OrderMessage(n.printer, o, card)); err != nil {
			n.recorder.OrderNotifyFailed()
			n.log.Error().Err(err).Int64("seller_id", s.ID).Str("order_id", o.ID).Msg("no se pudo enviar el aviso")
			continue
		}
		if err := n.sent.Mark(ctx, s.ID, o.ID); err != nil {
			return sent, err
		}
		n.recorder.OrderNotified()
		sent++
	}
	if sent > 0 {
		n.log.Info().Int64("seller_id", s.ID).Int("orders", sent).Msg("órdenes notificadas")
	}
	return sent, nil
}

// ListNewOrders texto con las órdenes nuevas de un vendedor, sin marcarlas.
func (n *OrderNotifier) ListNewOrders(ctx context.Context, sellerID int64) (string, []entity.NewOrder, error) {
	s, err := n.sellers.GetByID(ctx, sellerID)
	if err != nil {
		return "", nil, err
	}
	if s == nil {
		return "", nil, domain.ErrNotFound
	}
	orders, err := n.source.NewOrders(ctx, s.WBToken)
	if err != nil {
		return "", nil, fmt.Errorf("notify: órdenes nuevas: %w", err)
	}
	return OrdersListMessage(n.printer, orders), orders, nil
}
