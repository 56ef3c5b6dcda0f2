package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
)

// TrainingHandler eğitim ve katılımcı uç noktaları.
type TrainingHandler struct {
	uc *usecase.TrainingUseCase
}

// NewTrainingHandler kurucu.
func NewTrainingHandler(uc *usecase.TrainingUseCase) *TrainingHandler {
	return &TrainingHandler{uc: uc}
}

// List godoc
// @Summary      Eğitimler
// @Tags         trainings
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "planned | ongoing | completed | cancelled"
// @Success      200     {object}  dto.ListResponse[entity.Training]
// @Router       /api/trainings [get]
func (h *TrainingHandler) List(c *fiber.Ctx) error {
	var q dto.TrainingQuery
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
// @Summary      Eğitim detayı
// @Tags         trainings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Eğitim ID"
// @Success      200  {object}  entity.Training
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trainings/{id} [get]
func (h *TrainingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Eğitim oluştur
// @Tags         trainings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TrainingRequest  true  "eğitim"
// @Success      201   {object}  entity.Training
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/trainings [post]
func (h *TrainingHandler) Create(c *fiber.Ctx) error {
	var in dto.TrainingRequest
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
// @Summary      Eğitim güncelle
// @Tags         trainings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Eğitim ID"
// @Param        body  body  dto.TrainingRequest  true  "eğitim"
// @Success      200   {object}  entity.Training
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trainings/{id} [put]
func (h *TrainingHandler) Update(c *fiber.Ctx) error {
	var in dto.TrainingRequest
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
// @Summary      Eğitim sil
// @Tags         trainings
// @Security     Bearer
// @Param        id   path  string  true  "Eğitim ID"
// @Success      204
// @Router       /api/trainings/{id} [delete]
func (h *TrainingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Participants godoc
// @Summary      Katılımcılar
// @Tags         trainings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Eğitim ID"
// @Success      200  {array}   dto.ParticipantResponse
// @Router       /api/trainings/{id}/participants [get]
func (h *TrainingHandler) Participants(c *fiber.Ctx) error {
	out, err := h.uc.Participants(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddParticipant godoc
// @Summary      Katılımcı ekle
// @Description  Kapasite doluysa 409 döner.
// @Tags         trainings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Eğitim ID"
// @Param        body  body  dto.AddParticipantRequest  true  "personel"
// @Success      201   {object}  entity.TrainingParticipant
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trainings/{id}/participants [post]
func (h *TrainingHandler) AddParticipant(c *fiber.Ctx) error {
	var in dto.AddParticipantRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddParticipant(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateParticipant godoc
// @Summary      Katılımcı tamamlama durumu
// @Tags         trainings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id          path  string                        true  "Eğitim ID"
// @Param        employeeId  path  string                        true  "Personel ID"
// @Param        body        body  dto.UpdateParticipantRequest  true  "tamamlandı"
// @Success      200         {object}  entity.TrainingParticipant
// @Router       /api/trainings/{id}/participants/{employeeId} [put]
func (h *TrainingHandler) UpdateParticipant(c *fiber.Ctx) error {
	var in dto.UpdateParticipantRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateParticipant(c.Context(), actor(c), c.Params("id"), c.Params("employeeId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveParticipant godoc
// @Summary      Katılımcı çıkar
// @Tags         trainings
// @Security     Bearer
// @Param        id          path  string  true  "Eğitim ID"
// @Param        employeeId  path  string  true  "Personel ID"
// @Success      204
// @Router       /api/trainings/{id}/participants/{employeeId} [delete]
func (h *TrainingHandler) RemoveParticipant(c *fiber.Ctx) error {
	if err := h.uc.RemoveParticipant(c.Context(), actor(c), c.Params("id"), c.Params("employeeId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
