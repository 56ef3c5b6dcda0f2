package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
)

// SettingHandler şirket ayarları.
type SettingHandler struct {
	uc *usecase.SettingUseCase
}

// NewSettingHandler kurucu.
func NewSettingHandler(uc *usecase.SettingUseCase) *SettingHandler {
	return &SettingHandler{uc: uc}
}

// List godoc
// @Summary      Ayarlar
// @Description  Kayıtlı olmayan anahtarlar varsayılan değerleriyle döner.
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "payroll | leave | general"
// @Success      200       {array}   entity.SystemSetting
// @Router       /api/settings [get]
func (h *SettingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), actor(c), c.Query("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Ayar
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "Anahtar (ör. payroll.minimum_wage)"
// @Success      200  {object}  entity.SystemSetting
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [get]
func (h *SettingHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), actor(c), c.Params("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Ayar yaz
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        key   path  string                    true  "Anahtar"
// @Param        body  body  dto.UpsertSettingRequest  true  "değer, kategori, açıklama"
// @Success      200   {object}  entity.SystemSetting
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [put]
func (h *SettingHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Upsert(c.Context(), actor(c), c.Params("key"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Ayarı varsayılana döndür
// @Tags         settings
// @Security     Bearer
// @Param        key  path  string  true  "Anahtar"
// @Success      204
// @Router       /api/settings/{key} [delete]
func (h *SettingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actor(c), c.Params("key")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
