package handlers

import (
	"context"
	"errors"

	"github.com/anjiri1684/tutoring_api/services"
	"github.com/anjiri1684/tutoring_api/websocket"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

// Handler adapts the in-memory services to fiber routes.
type Handler struct {
	svc       *services.Services
	hub       *websocket.Hub
	jwtSecret []byte
	logger    *zap.Logger
}

func New(svc *services.Services, hub *websocket.Hub, jwtSecret []byte, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, hub: hub, jwtSecret: jwtSecret, logger: logger}
}

var errCannotParse = errors.New("Cannot parse JSON")

// parse decodes the body into req and runs its validate tags.
func parse(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errCannotParse
	}
	return validate.Struct(req)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"
	switch {
	case errors.Is(err, services.ErrNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		status, message = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrRequestProcessed):
		status, message = fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrUploadsDisabled):
		status, message = fiber.StatusServiceUnavailable, err.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, message = fiber.StatusRequestTimeout, "Request cancelled"
	default:
		h.logger.Error("request failed", zap.String("path", c.Path()), zap.String("method", c.Method()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
}
