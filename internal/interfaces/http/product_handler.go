package http

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/DenisZev/wildberries-bot/internal/application/costs"
	"github.com/DenisZev/wildberries-bot/internal/application/dto"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

// ProductHandler registro de costos de compra del vendedor (protegido).
type ProductHandler struct {
	svc *costs.Service
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(svc *costs.Service, log *logger.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log}
}

// List godoc
// @Summary      Listar costos declarados
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(50)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	sellerID := GetSellerID(c)
	if sellerID == 0 {
		return unauthorized(c)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()

	entries, err := h.svc.List(c.UserContext(), sellerID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.ProductListResponse{
		Items: []dto.ProductResponse{},
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(entries)},
	}
	for i := page.Offset; i < len(entries) && i < page.Offset+page.Limit; i++ {
		out.Items = append(out.Items, dto.ToProductResponse(entries[i]))
	}
	return c.JSON(out)
}

// SetCost godoc
// @Summary      Declarar costo de compra de un artículo
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        article  path  string  true  "Artículo del vendedor"
// @Param        body     body  dto.SetCostRequest  true  "cost"
// @Success      200      {object}  dto.ProductResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/products/{article}/cost [put]
func (h *ProductHandler) SetCost(c *fiber.Ctx) error {
	sellerID := GetSellerID(c)
	if sellerID == 0 {
		return unauthorized(c)
	}
	var in dto.SetCostRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.svc.DeclareCost(c.UserContext(), sellerID, c.Params("article"), in.Cost)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToProductResponse(*entry))
}

// Upsert godoc
// @Summary      Crear o reemplazar un artículo del registro
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        article  path  string  true  "Artículo del vendedor"
// @Param        body     body  dto.UpsertProductRequest  true  "producto"
// @Success      200      {object}  dto.ProductResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/products/{article} [put]
func (h *ProductHandler) Upsert(c *fiber.Ctx) error {
	sellerID := GetSellerID(c)
	if sellerID == 0 {
		return unauthorized(c)
	}
	var in dto.UpsertProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.svc.SaveProduct(c.UserContext(), sellerID, c.Params("article"), costs.ProductInput{
		Name:     in.Name,
		Cost:     in.Cost,
		NmID:     in.NmID,
		Category: in.Category,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToProductResponse(*entry))
}

// Import godoc
// @Summary      Importar costos desde CSV (article,cost)
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Accept       text/csv
// @Produce      json
// @Param        file  formData  file  false  "Archivo CSV"
// @Success      200   {object}  dto.ImportCostsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/import [post]
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	sellerID := GetSellerID(c)
	if sellerID == 0 {
		return unauthorized(c)
	}
	var r io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
		}
		defer f.Close()
		r = f
	} else {
		if len(c.Body()) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "envíe el CSV como campo file o en el cuerpo"})
		}
		r = bytes.NewReader(c.Body())
	}

	res, err := h.svc.ImportCosts(c.UserContext(), sellerID, r)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.ImportCostsResponse{Updated: res.Updated, Errors: []dto.ImportError{}}
	for _, e := range res.Errors {
		out.Errors = append(out.Errors, dto.ImportError{Line: e.Line, Reason: e.Reason})
	}
	return c.JSON(out)
}

// Sync godoc
// @Summary      Sembrar el registro desde el catálogo del marketplace
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncCatalogResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/products/sync [post]
func (h *ProductHandler) Sync(c *fiber.Ctx) error {
	sellerID := GetSellerID(c)
	if sellerID == 0 {
		return unauthorized(c)
	}
	n, err := h.svc.SyncCatalog(c.UserContext(), sellerID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SyncCatalogResponse{Seeded: n})
}
