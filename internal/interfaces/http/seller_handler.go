package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DenisZev/wildberries-bot/internal/application/auth"
	"github.com/DenisZev/wildberries-bot/internal/application/dto"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

// RegistrationKeyHeader header con la llave de registro (si está configurada).
const RegistrationKeyHeader = "X-Registration-Key"

// SellerHandler registro y baja de vendedores.
type SellerHandler struct {
	uc  *auth.SellerUseCase
	log *logger.Logger
}

// NewSellerHandler construye el handler.
func NewSellerHandler(uc *auth.SellerUseCase, log *logger.Logger) *SellerHandler {
	return &SellerHandler{uc: uc, log: log}
}

// Register godoc
// @Summary      Registrar vendedor
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Param        X-Registration-Key  header  string  false  "Llave de registro"
// @Param        body  body  dto.RegisterSellerRequest  true  "id, wb_token, chat_id"
// @Success      201   {object}  dto.RegisterSellerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/sellers/register [post]
func (h *SellerHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSellerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(c.UserContext(), c.Get(RegistrationKeyHeader), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Me godoc
// @Summary      Vendedor autenticado
// @Tags         sellers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SellerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sellers/me [get]
func (h *SellerHandler) Me(c *fiber.Ctx) error {
	sellerID := GetSellerID(c)
	if sellerID == 0 {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.UserContext(), sellerID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Dar de baja al vendedor autenticado
// @Tags         sellers
// @Security     Bearer
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sellers/me [delete]
func (h *SellerHandler) Remove(c *fiber.Ctx) error {
	sellerID := GetSellerID(c)
	if sellerID == 0 {
		return unauthorized(c)
	}
	if err := h.uc.Remove(c.UserContext(), sellerID); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
