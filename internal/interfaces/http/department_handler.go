package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
)

// DepartmentHandler departman uç noktaları.
type DepartmentHandler struct {
	uc *usecase.DepartmentUseCase
}

// NewDepartmentHandler kurucu.
func NewDepartmentHandler(uc *usecase.DepartmentUseCase) *DepartmentHandler {
	return &DepartmentHandler{uc: uc}
}

// List godoc
// @Summary      Departmanları listele
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Sayfa boyutu"  default(20)
// @Param        offset  query  int  false  "Başlangıç"     default(0)
// @Success      200     {object}  dto.ListResponse[entity.Department]
// @Router       /api/departments [get]
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
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

// GetByID godoc
// @Summary      Departman detayı
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Departman ID"
// @Success      200  {object}  entity.Department
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [get]
func (h *DepartmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Departman oluştur
// @Tags         departments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DepartmentRequest  true  "ad, üst departman, yönetici"
// @Success      201   {object}  entity.Department
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/departments [post]
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var in dto.DepartmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), actor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Departman güncelle
// @Tags         departments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Departman ID"
// @Param        body  body  dto.DepartmentRequest  true  "departman"
// @Success      200   {object}  entity.Department
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [put]
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	var in dto.DepartmentRequest
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
// @Summary      Departman sil
// @Description  Bağlı personel varsa 409 döner.
// @Tags         departments
// @Security     Bearer
// @Param        id   path  string  true  "Departman ID"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
