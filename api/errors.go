package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/cogniz/pkg/cogniz"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps client errors onto bridge status codes.
func statusFor(err error) int {
	var remote *cogniz.RemoteError
	switch {
	case errors.Is(err, cogniz.ErrConfigurationMissing):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, cogniz.ErrEmptyContent), errors.Is(err, cogniz.ErrEmptySkillID):
		return fiber.StatusBadRequest
	case errors.As(err, &remote):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		s.logger.Warn("request failed",
			"path", c.Path(),
			"status", status,
			"error", err,
		)
	}
	return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}
