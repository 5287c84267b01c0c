package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/example/trmops/internal/directory"
	"github.com/example/trmops/internal/otp"
	"github.com/example/trmops/internal/phone"
	"github.com/example/trmops/internal/services"
)

// User-facing messages for each failure the login flow can surface.
const (
	MsgNoChallenge     = "No OTP session found. Please request a new code."
	MsgExpired         = "OTP has expired. Please request a new code."
	MsgMismatch        = "Invalid OTP. Please try again."
	MsgCodeFormat      = "Please enter the 6-digit code"
	MsgSendFailed      = "Failed to send OTP. Please try again."
	MsgResendFailed    = "Failed to resend OTP. Please try again."
	MsgResendSucceeded = "New verification code sent!"
	MsgAccountDisabled = "This account has been disabled. Contact your administrator."
	msgInternal        = "Something went wrong. Please try again."
)

// StatusFor maps an error to the HTTP status and message returned to the client.
func StatusFor(err error) (int, string) {
	var fiberErr *fiber.Error
	var phoneErr *phone.ValidationError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.As(err, &phoneErr):
		return fiber.StatusBadRequest, phoneErr.Message
	case errors.Is(err, otp.ErrInvalidCodeFormat):
		return fiber.StatusBadRequest, MsgCodeFormat
	case errors.Is(err, otp.ErrNoChallenge):
		return fiber.StatusUnauthorized, MsgNoChallenge
	case errors.Is(err, otp.ErrChallengeExpired):
		return fiber.StatusUnauthorized, MsgExpired
	case errors.Is(err, otp.ErrCodeMismatch):
		return fiber.StatusUnauthorized, MsgMismatch
	case errors.Is(err, services.ErrDeliveryFailed):
		return fiber.StatusBadGateway, MsgSendFailed
	case errors.Is(err, directory.ErrInactive):
		return fiber.StatusForbidden, MsgAccountDisabled
	case errors.Is(err, directory.ErrInvalidEntry):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, msgInternal
	}
}

// ErrorHandler renders every error as {"error": message}. Server-side
// failures are logged; client errors are not.
func ErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := StatusFor(err)
		if status >= fiber.StatusInternalServerError {
			logger.WithError(err).WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
			}).Error("request failed")
		}
		return c.Status(status).JSON(fiber.Map{"error": message})
	}
}
