package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin/internal/application/dto"
	"github.com/jhoicas/shop-admin/internal/application/settings"
)

// SettingsHandler ajustes de la tienda (logo).
type SettingsHandler struct {
	uc *settings.LogoUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.LogoUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// UploadLogo godoc
// @Summary      Subir logo de la tienda
// @Description  png, jpeg, gif o webp. El tipo se detecta por contenido, no por extensión.
// @Tags         settings
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "imagen del logo"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settings/logo [post]
func (h *SettingsHandler) UploadLogo(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo file requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	user, err := h.uc.UpdateLogo(c.Context(), GetUserID(c), settings.LogoUpload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Body:     f,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
