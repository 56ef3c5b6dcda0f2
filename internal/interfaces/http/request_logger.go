package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/pkg/logger"
)

// RequestLogger her isteği yöntem, yol, durum ve süre ile loglar.
// Kimlik alanları AuthMiddleware'den sonra dolduğu için c.Next() dönüşünde okunur.
func RequestLogger(log *logger.Logger) fiber.Handler {
	l := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// ErrorHandler yanıt kodunu yazsın
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = l.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("company_id", GetCompanyID(c)).
			Str("user_id", GetUserID(c)).
			Msg("istek")
		return nil
	}
}

// RateLimit aynı IP'den dakikada en fazla max isteğe izin verir (giriş ve herkese açık başvuru).
func RateLimit(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "TOO_MANY_REQUESTS",
				Message: "çok fazla istek, bir dakika sonra tekrar deneyin",
			})
		},
	})
}
