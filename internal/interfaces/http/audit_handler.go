package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
)

// AuditHandler denetim kayıtları ve etkinlik akışı.
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler kurucu.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Denetim kayıtları
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        entity_type  query  string  false  "Varlık türü"
// @Param        entity_id    query  string  false  "Varlık ID"
// @Param        user_id      query  string  false  "Kullanıcı"
// @Param        action       query  string  false  "create | update | delete | login ..."
// @Param        from         query  string  false  "YYYY-AA-GG"
// @Param        to           query  string  false  "YYYY-AA-GG (dahil)"
// @Success      200          {object}  dto.ListResponse[entity.AuditLog]
// @Failure      403          {object}  dto.ErrorResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var q dto.AuditQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.Context(), actor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Activities godoc
// @Summary      Son etkinlikler
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "En fazla 100"  default(20)
// @Success      200    {array}   entity.Activity
// @Router       /api/activities [get]
func (h *AuditHandler) Activities(c *fiber.Ctx) error {
	out, err := h.uc.Activities(c.Context(), actor(c), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
