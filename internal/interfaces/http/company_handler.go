package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
)

// CompanyHandler şirket ve modül uç noktaları.
type CompanyHandler struct {
	uc      *usecase.CompanyUseCase
	modules *usecase.ModuleService
}

// NewCompanyHandler kurucu.
func NewCompanyHandler(uc *usecase.CompanyUseCase, modules *usecase.ModuleService) *CompanyHandler {
	return &CompanyHandler{uc: uc, modules: modules}
}

// Create godoc
// @Summary      Şirket oluştur
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "ad, VKN, vergi dairesi"
// @Success      201   {object}  entity.Company
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Şirket detayı
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Şirket ID"
// @Success      200  {object}  entity.Company
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Şirketleri listele
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Sayfa boyutu"  default(20)
// @Param        offset  query  int  false  "Başlangıç"     default(0)
// @Success      200     {object}  dto.ListResponse[entity.Company]
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.Context(), actor(c), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Şirket güncelle
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Şirket ID"
// @Param        body  body  dto.UpdateCompanyRequest  true  "değişen alanlar"
// @Success      200   {object}  entity.Company
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Şirket sil
// @Tags         companies
// @Security     Bearer
// @Param        id   path  string  true  "Şirket ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Modules godoc
// @Summary      Şirket modülleri
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Şirket ID"
// @Success      200  {array}   dto.ModuleStatus
// @Router       /api/companies/{id}/modules [get]
func (h *CompanyHandler) Modules(c *fiber.Ctx) error {
	out, err := h.modules.List(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleModule godoc
// @Summary      Modül aç/kapat
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Şirket ID"
// @Param        body  body  dto.ModuleToggleRequest  true  "modül adı, durum, bitiş"
// @Success      200   {array}   dto.ModuleStatus
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/modules [put]
func (h *CompanyHandler) ToggleModule(c *fiber.Ctx) error {
	var in dto.ModuleToggleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.modules.Toggle(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
