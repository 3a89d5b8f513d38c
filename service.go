package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"passkey_auth_ms/config"
	"passkey_auth_ms/controller"
	"passkey_auth_ms/repository/command_repository"
	"passkey_auth_ms/repository/query_repository"
	"passkey_auth_ms/services"

	"github.com/IBM/sarama"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	//DB
	dbConnection *gorm.DB

	//Redis Client
	redisClient *redis.Client

	//Kafka Producer
	kafkaProducer sarama.SyncProducer

	//WebAuthn Conf
	webAuthn *webauthn.WebAuthn

	//Logger
	logger *zap.Logger

	// Repository
	userQueryRepository          query_repository.IUserQueryRepository
	authenticatorQueryRepository query_repository.IAuthenticatorQueryRepository
	passwordResetQueryRepository query_repository.IPasswordResetQueryRepository

	userCommandRepository          command_repository.IUserCommandRepository
	authenticatorCommandRepository command_repository.IAuthenticatorCommandRepository
	passwordResetCommandRepository command_repository.IPasswordResetCommandRepository

	// Service
	jwtService               services.IJWTService
	redisService             services.IRedisService
	mailerService            services.IMailerService
	sessionService           services.ISessionService
	authService              services.IAuthService
	passwordService          services.IPasswordService
	twoFactorService         services.ITwoFactorService
	passkeyService           services.IPasskeyService
	passkeyManagementService services.IPasskeyManagementService

	// Controller
	authController      controller.IAuthController
	passkeyController   controller.IPasskeyController
	twoFactorController controller.ITwoFactorController
}

// NOTE: Service Start
func (s *service) Start() {
	log.Info("Opening database connection...")
	s.dbConnection = config.OpenDatabaseConnection(config.Conf.Application.Datasource.PrimaryURL)
	config.Migrate(config.Conf.Application.Datasource.PrimaryURL)

	log.Info("Opening redis connection...")
	s.redisClient = config.ConnectToRedis(config.Conf.Application.Redis.Host)

	log.Info("Connecting kafka producer...")
	s.kafkaProducer = config.InitKafkaProducer()

	log.Info("WebAuthn config")
	s.webAuthn = config.InitWebAuthn()
	log.Info("WebAuthn configurated successfully")

	s.logger = config.InitLogger()

	// NOTE: Dependency Injections
	s.DependencyInjection()

	// NOTE: Start Fiber server...
	app := NewServer(s.authController, s.passkeyController, s.twoFactorController, s.sessionService, s.logger).Start()

	log.Info("Server starting..")
	// NOTE: Server start with goroutine
	go func() {
		if err := app.Listen(config.Conf.Application.Server.Port); err != nil {
			log.Fatal("Server failed to start")
		}
	}()
	// NOTE: Keep OS signals for graceful shutdown
	s.gracefulShutdown(app)
}

// NOTE: Depency Injection Operation
func (s *service) DependencyInjection() {
	// NOTE: JWT services configured and initialize...
	sessionTTL := time.Duration(config.Conf.Application.Security.TokenValidityInSeconds) * time.Second
	s.jwtService = services.NewJWTService(
		[]byte(config.Conf.Application.Security.Secret),
		config.Conf.Application.Security.Issuer,
		sessionTTL,
	)
	// NOTE: Repositories Injections
	s.userQueryRepository = query_repository.NewUserQueryRepository()
	s.authenticatorQueryRepository = query_repository.NewAuthenticatorQueryRepository()
	s.passwordResetQueryRepository = query_repository.NewPasswordResetQueryRepository()
	s.userCommandRepository = command_repository.NewUserCommandRepository()
	s.authenticatorCommandRepository = command_repository.NewAuthenticatorCommandRepository()
	s.passwordResetCommandRepository = command_repository.NewPasswordResetCommandRepository()
	// NOTE: Services Injections
	s.redisService = services.NewRedisService(s.redisClient)
	s.mailerService = services.NewMailerService(s.kafkaProducer)
	s.sessionService = services.NewSessionService(
		s.jwtService,
		sessionTTL,
		config.Conf.Application.Security.CookieDomain,
		config.Conf.Application.Security.CookieSecure,
	)
	s.authService = services.NewAuthService(s.dbConnection, s.userQueryRepository, s.userCommandRepository, s.mailerService)
	s.passwordService = services.NewPasswordService(
		s.dbConnection,
		s.userQueryRepository,
		s.userCommandRepository,
		s.passwordResetQueryRepository,
		s.passwordResetCommandRepository,
		s.mailerService,
	)
	s.twoFactorService = services.NewTwoFactorService(s.dbConnection, s.userQueryRepository, s.userCommandRepository, config.Conf.Application.Totp.Issuer)
	s.passkeyService = services.NewPasskeyService(s.webAuthn, s.dbConnection, s.userQueryRepository, s.authenticatorCommandRepository, s.redisService)
	s.passkeyManagementService = services.NewPasskeyManagementService(s.dbConnection, s.authenticatorQueryRepository, s.authenticatorCommandRepository)
	// NOTE: Controllers Injections
	s.authController = controller.NewAuthController(s.authService, s.passwordService, s.twoFactorService, s.sessionService)
	s.passkeyController = controller.NewPasskeyController(s.passkeyService, s.passkeyManagementService, s.sessionService)
	s.twoFactorController = controller.NewTwoFactorController(s.twoFactorService)
}

// NOTE: Graceful shutdown operation
func (s *service) gracefulShutdown(app *fiber.App) {

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// NOTE:Server Shutdown when keep signal
	<-sigChan
	log.Info("Shutting down server...")
	// NOTE: Creating context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// NOTE: Shutdown Fiber server
	if err := app.Shutdown(); err != nil {
		log.Error("error while shutting down app", err)
	}

	// NOTE: Shutdown Kafka producer
	if err := s.kafkaProducer.Close(); err != nil {
		log.Error("error while closing kafka producer", err)
	}

	// NOTE: Shutdown Database connection
	done := make(chan bool)
	go func() {
		config.CloseDatabaseConnection(s.dbConnection)
		done <- true
	}()

	select {
	case <-ctx.Done():
		log.Error("timeout while shutting down database", ctx.Err())
	case <-done:
		log.Info("database is gracefully shutdown", ctx.Err())
	}
}
