package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/DenisZev/wildberries-bot/internal/application/dto"
	"github.com/DenisZev/wildberries-bot/pkg/jwt"
)

// LocalSellerID key de Fiber Locals para el vendedor autenticado.
const LocalSellerID = "seller_id"

// AuthMiddleware valida el Bearer Token JWT y guarda el SellerID en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		sellerID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSellerID, sellerID)
		return c.Next()
	}
}

// GetSellerID devuelve el SellerID del contexto (después del middleware de auth); 0 si falta.
func GetSellerID(c *fiber.Ctx) int64 {
	v := c.Locals(LocalSellerID)
	if v == nil {
		return 0
	}
	id, _ := v.(int64)
	return id
}
