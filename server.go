package main

import (
	"time"

	"passkey_auth_ms/config"
	"passkey_auth_ms/controller"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/middleware"
	"passkey_auth_ms/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Server struct {
	AuthController      controller.IAuthController
	PasskeyController   controller.IPasskeyController
	TwoFactorController controller.ITwoFactorController
	Session             services.ISessionService
	Logger              *zap.Logger
}

// NOTE: Server Constructor
func NewServer(
	AuthController controller.IAuthController,
	PasskeyController controller.IPasskeyController,
	TwoFactorController controller.ITwoFactorController,
	Session services.ISessionService,
	Logger *zap.Logger,
) *Server {
	return &Server{
		AuthController:      AuthController,
		PasskeyController:   PasskeyController,
		TwoFactorController: TwoFactorController,
		Session:             Session,
		Logger:              Logger,
	}
}

// NOTE: Start Fiber Server
func (s *Server) Start() *fiber.App {
	app := fiber.New()

	middleware.InitValidator()

	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.LoggingMiddleware(s.Logger))
	app.Use(middleware.GlobalRateLimiter())

	// NOTE: Define API paths (context path and grouping by version)
	contextPath := app.Group(config.Conf.Application.Server.ContextPath)
	apiVersion := contextPath.Group(config.Conf.Application.Server.ApiVersion)

	requireAuth := middleware.RequireAuth(s.Session, true)
	requireIdentity := middleware.RequireAuth(s.Session, false)
	credentialLimiter := middleware.RouteRateLimiter(5, time.Minute)

	authGroup := apiVersion.Group("/auth")
	authGroup.Post("/signup", middleware.ValidateBody[request.SignupRequest](), s.AuthController.Signup)
	authGroup.Get("/verify-email", s.AuthController.VerifyEmail)
	authGroup.Post("/login", credentialLimiter, middleware.ValidateBody[request.LoginRequest](), s.AuthController.Login)
	authGroup.Post("/login/verify", credentialLimiter, requireIdentity, middleware.ValidateBody[request.VerifyLoginRequest](), s.AuthController.VerifyLogin)
	authGroup.Post("/logout", s.AuthController.Logout)
	authGroup.Get("/me", requireAuth, s.AuthController.Me)
	authGroup.Post("/forgot-password", credentialLimiter, middleware.ValidateBody[request.ForgotPasswordRequest](), s.AuthController.ForgotPassword)
	authGroup.Post("/reset-password", credentialLimiter, middleware.ValidateBody[request.ResetPasswordRequest](), s.AuthController.ResetPassword)

	actionsGroup := apiVersion.Group("/actions/passkeys")
	actionsGroup.Get("/registration", requireAuth, s.PasskeyController.RegisterStart)
	actionsGroup.Post("/registration", requireAuth, middleware.ValidateBody[request.FinishPasskeyRegistrationRequest](), s.PasskeyController.RegisterFinish)
	actionsGroup.Get("/authentication", s.PasskeyController.LoginStart)
	actionsGroup.Post("/authentication", credentialLimiter, middleware.ValidateBody[request.FinishPasskeyAuthenticationRequest](), s.PasskeyController.LoginFinish)

	passkeyGroup := apiVersion.Group("/passkeys", requireAuth)
	passkeyGroup.Get("/", s.PasskeyController.List)
	passkeyGroup.Patch("/:id", middleware.ValidateBody[request.RenamePasskeyRequest](), s.PasskeyController.Rename)
	passkeyGroup.Delete("/:id", s.PasskeyController.Delete)

	settingsGroup := apiVersion.Group("/settings", requireAuth)
	settingsGroup.Post("/password", middleware.ValidateBody[request.ChangePasswordRequest](), s.AuthController.ChangePassword)
	settingsGroup.Post("/2fa/enable", s.TwoFactorController.Enable)
	settingsGroup.Post("/2fa/verify", credentialLimiter, middleware.ValidateBody[request.VerifyTwoFaRequest](), s.TwoFactorController.Verify)
	settingsGroup.Post("/2fa/disable", s.TwoFactorController.Disable)

	return app
}
