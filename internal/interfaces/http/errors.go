package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/domain"
)

const internalMessage = "beklenmeyen bir hata oluştu, lütfen daha sonra tekrar deneyin"

// errorStatus domain hatasını HTTP durumuna ve hata koduna çevirir.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrModuleDisabled):
		return fiber.StatusForbidden, "MODULE_DISABLED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrLeaveOverlap):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusUnprocessableEntity, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrInsufficientLeaveBalance):
		return fiber.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError hatayı JSON gövdesiyle yazar. 500 ayrıntısı istemciye gönderilmez, loglanır.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("company_id", GetCompanyID(c)).
			Msg("istek işlenemedi")
		msg = internalMessage
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "istek gövdesi çözümlenemedi"})
}

func badQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "sorgu parametreleri geçersiz"})
}

// ErrorHandler fiber.Config için; route bulunamaması ve panik sonrası hatalar aynı gövdeyle döner.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge:
			code = "PAYLOAD_TOO_LARGE"
		case fiber.StatusTooManyRequests:
			code = "TOO_MANY_REQUESTS"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return writeError(c, err)
}
