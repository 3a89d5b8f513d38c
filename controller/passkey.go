package controller

import (
	"strconv"

	"passkey_auth_ms/apperrors"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/middleware"
	"passkey_auth_ms/services"
	"passkey_auth_ms/util"

	"github.com/gofiber/fiber/v2"
)

type IPasskeyController interface {
	RegisterStart(c *fiber.Ctx) error
	RegisterFinish(c *fiber.Ctx) error
	LoginStart(c *fiber.Ctx) error
	LoginFinish(c *fiber.Ctx) error
	List(c *fiber.Ctx) error
	Rename(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

type PasskeyController struct {
	passkey services.IPasskeyService
	manager services.IPasskeyManagementService
	session services.ISessionService
}

func NewPasskeyController(passkey services.IPasskeyService, manager services.IPasskeyManagementService, session services.ISessionService) IPasskeyController {
	return &PasskeyController{passkey: passkey, manager: manager, session: session}
}

func (pc *PasskeyController) RegisterStart(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	options, err := pc.passkey.RegisterStart(userID)
	if err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"options": options})
}

func (pc *PasskeyController) RegisterFinish(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	req := c.Locals("body").(*request.FinishPasskeyRegistrationRequest)

	fallbackName := util.PasskeyNameFromUserAgent(c.Get(fiber.HeaderUserAgent))
	verified, err := pc.passkey.RegisterFinish(userID, req.AttResp, req.Name, fallbackName)
	if err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(response.VerifiedResponse{Verified: verified})
}

// LoginStart serves both flows: authenticated requests get an allow-list of
// their own credentials, anonymous ones get discoverable-credential options.
func (pc *PasskeyController) LoginStart(c *fiber.Ctx) error {
	userID, err := pc.session.Authenticate(c, false)
	if err != nil {
		userID = 0
	}

	options, err := pc.passkey.LoginStart(userID)
	if err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"options": options})
}

func (pc *PasskeyController) LoginFinish(c *fiber.Ctx) error {
	req := c.Locals("body").(*request.FinishPasskeyAuthenticationRequest)

	user, err := pc.passkey.LoginFinish(req.Challenge, req.AsseResp)
	if err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if err := pc.session.IssueSession(c, user.Id, user.OtpEnabled); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to establish session"})
	}
	return c.JSON(response.VerifiedResponse{Verified: true})
}

func (pc *PasskeyController) List(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	passkeys, err := pc.manager.List(userID)
	if err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"passkeys": passkeys})
}

func (pc *PasskeyController) Rename(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid passkey id"})
	}
	req := c.Locals("body").(*request.RenamePasskeyRequest)

	if err := pc.manager.Rename(uint(id), userID, req.Name); err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (pc *PasskeyController) Delete(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid passkey id"})
	}

	if err := pc.manager.Delete(uint(id), userID); err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
