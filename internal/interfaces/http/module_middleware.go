package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
)

type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}

// localModulePrefix aynı istekte tekrar eden modül sorgularını önlemek için Locals anahtarı öneki.
const localModulePrefix = "module:"

// RequireModule SaaS modülü şirket için etkin değilse 403 MODULE_DISABLED döner.
// Sorgu başarısızsa 503 döner. AuthMiddleware'den sonra kullanılır.
func RequireModule(moduleName string, checker moduleChecker) fiber.Handler {
	key := localModulePrefix + moduleName
	return func(c *fiber.Ctx) error {
		if ok, _ := c.Locals(key).(bool); ok {
			return c.Next()
		}
		companyID := GetCompanyID(c)
		if companyID == "" {
			return writeError(c, fmt.Errorf("%w: token şirket bilgisi içermiyor", domain.ErrUnauthorized))
		}

		active, err := checker.HasActiveModule(c.Context(), companyID, moduleName)
		if err != nil {
			log.Warn().Err(err).Str("company_id", companyID).Str("module", moduleName).Msg("modül kontrolü başarısız")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "modül durumu doğrulanamadı, daha sonra tekrar deneyin",
			})
		}
		if !active {
			return writeError(c, fmt.Errorf("%w: %s", domain.ErrModuleDisabled, moduleName))
		}
		c.Locals(key, true)
		return c.Next()
	}
}
