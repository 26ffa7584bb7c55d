package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DenisZev/wildberries-bot/internal/application/dto"
	"github.com/DenisZev/wildberries-bot/internal/application/notify"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

// OrderHandler órdenes nuevas del vendedor (protegido).
type OrderHandler struct {
	notifier *notify.OrderNotifier
	log      *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(notifier *notify.OrderNotifier, log *logger.Logger) *OrderHandler {
	return &OrderHandler{notifier: notifier, log: log}
}

// New godoc
// @Summary      Órdenes nuevas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NewOrdersResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/orders/new [get]
func (h *OrderHandler) New(c *fiber.Ctx) error {
	sellerID := GetSellerID(c)
	if sellerID == 0 {
		return unauthorized(c)
	}
	msg, orders, err := h.notifier.ListNewOrders(c.UserContext(), sellerID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.NewOrdersResponse{Count: len(orders), Message: msg, Orders: []dto.NewOrderDTO{}}
	for _, o := range orders {
		out.Orders = append(out.Orders, dto.NewOrderDTO{
			ID:        o.ID,
			Article:   o.Article,
			NmID:      o.NmID,
			SKUs:      o.SKUs,
			SalePrice: o.SalePrice.Decimal(),
			CreatedAt: o.CreatedAt,
		})
	}
	return c.JSON(out)
}
