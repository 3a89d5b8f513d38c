package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Authentication and ceremony failures share generic, non-enumerating
// messages so responses never reveal whether an account or credential exists.
var (
	ErrValidation           = errors.New("invalid request")
	ErrBadCredentials       = errors.New("bad credentials")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrNotElevated          = errors.New("two-factor verification required")
	ErrUnknownCredential    = errors.New("unknown credential")
	ErrChallengeMismatch    = errors.New("challenge mismatch")
	ErrInvalidCode          = errors.New("failed to validate code, try again")
	ErrSamePassword         = errors.New("new password must differ from current password")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
)

// Status maps a service error to its HTTP status code. Anything not in the
// taxonomy is a store or collaborator fault and surfaces as a 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrBadCredentials),
		errors.Is(err, ErrUnknownCredential):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrNotElevated):
		return fiber.StatusForbidden
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrChallengeMismatch),
		errors.Is(err, ErrInvalidCode),
		errors.Is(err, ErrSamePassword),
		errors.Is(err, ErrInvalidOrExpiredCode):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
