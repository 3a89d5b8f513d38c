package controller

import (
	"passkey_auth_ms/apperrors"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/middleware"
	"passkey_auth_ms/services"

	"github.com/gofiber/fiber/v2"
)

type ITwoFactorController interface {
	Enable(c *fiber.Ctx) error
	Verify(c *fiber.Ctx) error
	Disable(c *fiber.Ctx) error
}

type TwoFactorController struct {
	twoFactor services.ITwoFactorService
}

func NewTwoFactorController(twoFactor services.ITwoFactorService) ITwoFactorController {
	return &TwoFactorController{twoFactor: twoFactor}
}

func (tc *TwoFactorController) Enable(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	resp, err := tc.twoFactor.EnableBegin(userID)
	if err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resp)
}

func (tc *TwoFactorController) Verify(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	req := c.Locals("body").(*request.VerifyTwoFaRequest)

	if err := tc.twoFactor.Verify(userID, req.Token); err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": response.STATUS_OK})
}

func (tc *TwoFactorController) Disable(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	if err := tc.twoFactor.Disable(userID); err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": response.STATUS_OK})
}
