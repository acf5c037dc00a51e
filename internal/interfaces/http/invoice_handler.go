package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin/internal/application/billing"
)

// InvoiceHandler descarga el PDF de una venta.
type InvoiceHandler struct {
	uc *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Download godoc
// @Summary      Factura PDF de una venta
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        saleId  path  string  true  "ID de la venta"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/invoices/{saleId} [get]
func (h *InvoiceHandler) Download(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.DownloadInvoicePDF(c.Context(), GetShopID(c), c.Params("saleId"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(pdf)
}
