package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ik-portal/internal/application/analytics"
)

// DashboardHandler gösterge paneli.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler kurucu.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Gösterge paneli özeti
// @Description  Personel sayıları, bekleyen izinler, açık ilanlar, bu ayın bordro toplamları,
// @Description  yaklaşan eğitimler, departman dağılımı ve son etkinlikler.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
