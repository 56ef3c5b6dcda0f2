package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
)

// ApplicationHandler İK tarafı başvuru yönetimi.
type ApplicationHandler struct {
	uc *usecase.ApplicationUseCase
}

// NewApplicationHandler kurucu.
func NewApplicationHandler(uc *usecase.ApplicationUseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// CVURLResponse CV indirme adresi.
type CVURLResponse struct {
	URL string `json:"url"`
}

// List godoc
// @Summary      Başvurular
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        job_id  query  string  false  "İlan"
// @Param        stage   query  string  false  "new | screening | interview | offer | hired | rejected | withdrawn"
// @Success      200     {object}  dto.ListResponse[entity.JobApplication]
// @Router       /api/applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	var q dto.ApplicationQuery
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
// @Summary      Başvuru detayı
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Başvuru ID"
// @Success      200  {object}  entity.JobApplication
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/applications/{id} [get]
func (h *ApplicationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Başvuru aşaması ve notları
// @Tags         applications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "Başvuru ID"
// @Param        body  body  dto.UpdateApplicationRequest  true  "aşama, notlar"
// @Success      200   {object}  entity.JobApplication
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/applications/{id} [put]
func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateApplicationRequest
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
// @Summary      Başvuru sil
// @Tags         applications
// @Security     Bearer
// @Param        id   path  string  true  "Başvuru ID"
// @Success      204
// @Router       /api/applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Evaluate godoc
// @Summary      Adayı yapay zekâ ile değerlendir
// @Description  Puan (0-100), özet, güçlü yönler ve riskler başvuruya kaydedilir.
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Başvuru ID"
// @Success      200  {object}  entity.JobApplication
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/applications/{id}/evaluate [post]
func (h *ApplicationHandler) Evaluate(c *fiber.Ctx) error {
	out, err := h.uc.Evaluate(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CVURL godoc
// @Summary      CV indirme adresi
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Başvuru ID"
// @Success      200  {object}  CVURLResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/applications/{id}/cv-url [get]
func (h *ApplicationHandler) CVURL(c *fiber.Ctx) error {
	url, err := h.uc.CVDownloadURL(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(CVURLResponse{URL: url})
}
