package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin/internal/application/dto"
	"github.com/jhoicas/shop-admin/internal/application/reporting"
)

// ReportHandler maneja el dashboard y el reporte de ventas protegido.
type ReportHandler struct {
	uc *reporting.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Resumen de la tienda
// @Description  Inventario, alertas de stock bajo, ingresos de hoy (UTC) e item más vendido.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetShopID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesHistory godoc
// @Summary      Historial de ventas
// @Description  Solo el dueño, y exige la contraseña de dueño en cada petición.
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalesReportRequest  true  "owner_password"
// @Success      200   {object}  dto.SalesReportResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/reports/sales [post]
func (h *ReportHandler) SalesHistory(c *fiber.Ctx) error {
	var in dto.SalesReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sales, err := h.uc.SalesHistory(c.Context(), GetUserID(c), in.OwnerPassword)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SalesReportResponse{Total: len(sales), Sales: sales})
}
