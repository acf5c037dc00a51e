package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin/internal/application/dto"
	"github.com/jhoicas/shop-admin/internal/application/inventory"
)

// ItemHandler maneja el inventario de la tienda.
type ItemHandler struct {
	uc *inventory.UseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *inventory.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Dar de alta un item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name, quantity, unit_price"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.AddItem(c.Context(), GetShopID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List godoc
// @Summary      Listar items de la tienda
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.Context(), GetShopID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// LowStock godoc
// @Summary      Items con stock bajo
// @Description  threshold opcional; sin él se usa el umbral configurado.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "umbral inclusivo"
// @Success      200  {array}   dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items/low-stock [get]
func (h *ItemHandler) LowStock(c *fiber.Ctx) error {
	threshold := -1
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold debe ser un entero >= 0"})
		}
		threshold = n
	}
	items, err := h.uc.ListLowStock(c.Context(), GetShopID(c), threshold)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// Restock godoc
// @Summary      Reponer stock
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del item"
// @Param        body  body  dto.RestockRequest  true  "quantity"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/restock [post]
func (h *ItemHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.Restock(c.Context(), GetShopID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Transactions godoc
// @Summary      Movimientos de stock de un item
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {array}   dto.StockTransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/transactions [get]
func (h *ItemHandler) Transactions(c *fiber.Ctx) error {
	txs, err := h.uc.ListTransactions(c.Context(), GetShopID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(txs)
}
