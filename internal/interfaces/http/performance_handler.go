package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
)

// PerformanceHandler performans değerlendirmeleri.
type PerformanceHandler struct {
	uc *usecase.PerformanceUseCase
}

// NewPerformanceHandler kurucu.
func NewPerformanceHandler(uc *usecase.PerformanceUseCase) *PerformanceHandler {
	return &PerformanceHandler{uc: uc}
}

// List godoc
// @Summary      Değerlendirmeler
// @Tags         performance
// @Security     Bearer
// @Produce      json
// @Param        employee_id  query  string  false  "Personel"
// @Param        reviewer_id  query  string  false  "Değerlendiren"
// @Param        period       query  string  false  "2025-Q1, 2025-H1 ya da 2025"
// @Param        status       query  string  false  "draft | submitted | acknowledged"
// @Success      200          {object}  dto.ListResponse[entity.Performance]
// @Router       /api/performance [get]
func (h *PerformanceHandler) List(c *fiber.Ctx) error {
	var q dto.PerformanceQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.Context(), actor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Değerlendirme detayı
// @Tags         performance
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Değerlendirme ID"
// @Success      200  {object}  entity.Performance
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/performance/{id} [get]
func (h *PerformanceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Değerlendirme oluştur
// @Tags         performance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PerformanceRequest  true  "değerlendirme"
// @Success      201   {object}  entity.Performance
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/performance [post]
func (h *PerformanceHandler) Create(c *fiber.Ctx) error {
	var in dto.PerformanceRequest
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
// @Summary      Taslak değerlendirmeyi güncelle
// @Tags         performance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Değerlendirme ID"
// @Param        body  body  dto.PerformanceRequest  true  "değerlendirme"
// @Success      200   {object}  entity.Performance
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/performance/{id} [put]
func (h *PerformanceHandler) Update(c *fiber.Ctx) error {
	var in dto.PerformanceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Değerlendirmeyi gönder
// @Tags         performance
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Değerlendirme ID"
// @Success      200  {object}  entity.Performance
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/performance/{id}/submit [post]
func (h *PerformanceHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Acknowledge godoc
// @Summary      Değerlendirmeyi onayla (personel)
// @Tags         performance
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Değerlendirme ID"
// @Success      200  {object}  entity.Performance
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/performance/{id}/acknowledge [post]
func (h *PerformanceHandler) Acknowledge(c *fiber.Ctx) error {
	out, err := h.uc.Acknowledge(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Değerlendirme sil
// @Tags         performance
// @Security     Bearer
// @Param        id   path  string  true  "Değerlendirme ID"
// @Success      204
// @Router       /api/performance/{id} [delete]
func (h *PerformanceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary      Dönem bazında ortalama puan
// @Tags         performance
// @Security     Bearer
// @Produce      json
// @Param        employeeId  path  string  true  "Personel ID"
// @Success      200         {object}  dto.PerformanceSummary
// @Router       /api/performance/summary/{employeeId} [get]
func (h *PerformanceHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), actor(c), c.Params("employeeId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
