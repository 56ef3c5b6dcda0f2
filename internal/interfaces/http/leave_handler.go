package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
)

// LeaveHandler izin talepleri.
type LeaveHandler struct {
	uc *usecase.LeaveUseCase
}

// NewLeaveHandler kurucu.
func NewLeaveHandler(uc *usecase.LeaveUseCase) *LeaveHandler {
	return &LeaveHandler{uc: uc}
}

// List godoc
// @Summary      İzin talepleri
// @Tags         leaves
// @Security     Bearer
// @Produce      json
// @Param        employee_id  query  string  false  "Personel"
// @Param        status       query  string  false  "pending | approved | rejected | cancelled"
// @Param        type         query  string  false  "İzin türü"
// @Param        from         query  string  false  "YYYY-AA-GG"
// @Param        to           query  string  false  "YYYY-AA-GG"
// @Param        limit        query  int     false  "Sayfa boyutu"  default(20)
// @Param        offset       query  int     false  "Başlangıç"     default(0)
// @Success      200          {object}  dto.ListResponse[entity.Leave]
// @Router       /api/leaves [get]
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	var q dto.LeaveQuery
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
// @Summary      İzin detayı
// @Tags         leaves
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "İzin ID"
// @Success      200  {object}  entity.Leave
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leaves/{id} [get]
func (h *LeaveHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      İzin talebi oluştur
// @Tags         leaves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeaveRequest  true  "tür, başlangıç, bitiş, açıklama"
// @Success      201   {object}  entity.Leave
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/leaves [post]
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeaveRequest
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
// @Summary      Bekleyen izin talebini güncelle
// @Tags         leaves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "İzin ID"
// @Param        body  body  dto.UpdateLeaveRequest  true  "değişen alanlar"
// @Success      200   {object}  entity.Leave
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/leaves/{id} [put]
func (h *LeaveHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLeaveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      İzni onayla
// @Tags         leaves
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "İzin ID"
// @Success      200  {object}  entity.Leave
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/leaves/{id}/approve [post]
func (h *LeaveHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      İzni reddet
// @Tags         leaves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "İzin ID"
// @Param        body  body  dto.RejectLeaveRequest  true  "ret nedeni"
// @Success      200   {object}  entity.Leave
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/leaves/{id}/reject [post]
func (h *LeaveHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectLeaveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Reject(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      İzni iptal et
// @Tags         leaves
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "İzin ID"
// @Success      200  {object}  entity.Leave
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/leaves/{id}/cancel [post]
func (h *LeaveHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      İzin sil
// @Tags         leaves
// @Security     Bearer
// @Param        id   path  string  true  "İzin ID"
// @Success      204
// @Router       /api/leaves/{id} [delete]
func (h *LeaveHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Balance godoc
// @Summary      Yıllık izin bakiyesi
// @Description  4857 sayılı Kanun md. 53'e göre hak edilen, kullanılan ve kalan gün.
// @Tags         leaves
// @Security     Bearer
// @Produce      json
// @Param        employeeId  path   string  true   "Personel ID"
// @Param        year        query  int     false  "Yıl (varsayılan: bu yıl)"
// @Success      200         {object}  dto.LeaveBalanceResponse
// @Router       /api/leaves/balance/{employeeId} [get]
func (h *LeaveHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.Balance(c.Context(), actor(c), c.Params("employeeId"), c.QueryInt("year", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
