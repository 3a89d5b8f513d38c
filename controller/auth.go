package controller

import (
	"passkey_auth_ms/apperrors"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/middleware"
	"passkey_auth_ms/services"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	Signup(c *fiber.Ctx) error
	VerifyEmail(c *fiber.Ctx) error
	Login(c *fiber.Ctx) error
	VerifyLogin(c *fiber.Ctx) error
	Logout(c *fiber.Ctx) error
	Me(c *fiber.Ctx) error
	ForgotPassword(c *fiber.Ctx) error
	ResetPassword(c *fiber.Ctx) error
	ChangePassword(c *fiber.Ctx) error
}

type AuthController struct {
	auth      services.IAuthService
	password  services.IPasswordService
	twoFactor services.ITwoFactorService
	session   services.ISessionService
}

func NewAuthController(auth services.IAuthService, password services.IPasswordService, twoFactor services.ITwoFactorService, session services.ISessionService) IAuthController {
	return &AuthController{auth: auth, password: password, twoFactor: twoFactor, session: session}
}

func (ac *AuthController) Signup(c *fiber.Ctx) error {
	req := c.Locals("body").(*request.SignupRequest)

	resp, err := ac.auth.Signup(req)
	if err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (ac *AuthController) VerifyEmail(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "'code' query parameter is required"})
	}

	user, err := ac.auth.VerifyEmail(code)
	if err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": response.STATUS_OK, "first_name": user.FirstName})
}

// Login runs the password step of the state machine. With 2FA enabled the
// session starts un-elevated and the client is pointed at the verify step.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	req := c.Locals("body").(*request.LoginRequest)

	user, err := ac.auth.Login(req)
	if err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ac.session.IssueSession(c, user.Id, user.OtpEnabled); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to establish session"})
	}

	status := response.STATUS_OK
	if user.OtpEnabled {
		status = response.STATUS_2FA_REQUIRED
	}
	return c.JSON(response.LoginResponse{UserId: user.Id, Status: status})
}

func (ac *AuthController) VerifyLogin(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	req := c.Locals("body").(*request.VerifyLoginRequest)

	if err := ac.twoFactor.ValidateLogin(userID, req.Token); err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ac.session.Elevate(c, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to establish session"})
	}
	return c.JSON(fiber.Map{"status": response.STATUS_OK})
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	resp, err := ac.auth.Profile(userID)
	if err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resp)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	ac.session.ClearSession(c)
	return c.JSON(fiber.Map{"status": response.STATUS_OK, "redirect": "/login"})
}

// ForgotPassword always answers success-shaped so responses cannot be used
// to discover which emails have accounts.
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	req := c.Locals("body").(*request.ForgotPasswordRequest)

	if err := ac.password.RequestReset(req.Email); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to process request"})
	}
	return c.JSON(fiber.Map{"status": response.STATUS_OK})
}

func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	req := c.Locals("body").(*request.ResetPasswordRequest)

	if err := ac.password.CompleteReset(req.VerificationCode, req.Password); err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": response.STATUS_OK, "redirect": "/login"})
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	req := c.Locals("body").(*request.ChangePasswordRequest)

	if err := ac.password.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		return c.Status(apperrors.Status(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": response.STATUS_OK})
}
