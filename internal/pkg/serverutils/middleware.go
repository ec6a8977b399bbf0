package serverutils

import (
	"errors"

	"vocabforge-be/internal/service"
	"vocabforge-be/pkg/quota"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ErrorHandlerMiddleware translates service errors into HTTP responses so
// controllers can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var verr *ValidationError
		if errors.As(err, &verr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorBody{
				Message: "Request validation failed",
				Details: verr.Fields,
			})
		}

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return ctx.Status(ferr.Code).JSON(ErrorBody{Message: ferr.Message})
		}

		switch {
		case errors.Is(err, service.ErrQuotaExceeded):
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorBody{Message: err.Error()})
		case errors.Is(err, service.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorBody{Message: err.Error()})
		case errors.Is(err, service.ErrForbidden):
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorBody{Message: err.Error()})
		case errors.Is(err, quota.ErrEmergencyStop):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorBody{Message: err.Error()})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{Message: "Internal server error"})
		}
	}
}

// UserFromHeaders reads the identity the gateway attached to the request.
// This core trusts the upstream auth layer entirely.
func UserFromHeaders(ctx *fiber.Ctx) (uuid.UUID, string, error) {
	userId, err := uuid.Parse(ctx.Get("X-User-Id"))
	if err != nil {
		return uuid.Nil, "", fiber.NewError(fiber.StatusUnauthorized, "missing or invalid X-User-Id header")
	}
	tier := ctx.Get("X-User-Tier")
	if tier == "" {
		tier = "free"
	}
	return userId, tier, nil
}
