package app

import (
	"context"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/Rathore23/auth-microservice/internal/config"
	httpx "github.com/Rathore23/auth-microservice/internal/http"
	"github.com/Rathore23/auth-microservice/internal/http/handlers"
	"github.com/Rathore23/auth-microservice/internal/http/middleware"
	"github.com/Rathore23/auth-microservice/internal/infrastructure/auth"
	"github.com/Rathore23/auth-microservice/internal/infrastructure/database"
	"github.com/Rathore23/auth-microservice/internal/infrastructure/notifications"
	"github.com/Rathore23/auth-microservice/internal/infrastructure/repositories"
	"github.com/Rathore23/auth-microservice/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Enforcer    *casbin.Enforcer

	// Repositories
	UserRepo    domain.UserRepository
	OTPRepo     domain.OTPRepository
	ResetRepo   domain.ResetTicketRepository
	ProductRepo domain.ProductRepository
	Revocations domain.RevocationStore

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	OTPSvc          domain.OTPService
	SessionSvc      domain.SessionService
	AuthSvc         domain.AuthService
	PolicySvc       domain.PolicyService
	Authorizer      domain.Authorizer
	AccountSvc      domain.AccountService
	ProductSvc      domain.ProductService

	Router *gin.Engine
}

// NewContainer connects to postgres and redis and wires every component
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: log}

	// Initialize infrastructure
	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initCasbin(); err != nil {
		c.Close()
		return nil, err
	}
	c.initNotifications()

	if err := c.wire(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) initDatabase() error {
	level := logger.Info
	if c.Config.Environment == "production" {
		level = logger.Warn
	}
	db, err := database.Open(c.Config.DSN, level)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis(ctx context.Context) error {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	if err := c.RedisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

func (c *Container) initCasbin() error {
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("failed to initialize casbin: %w", err)
	}
	c.Enforcer = cas.E
	return nil
}

func (c *Container) initNotifications() {
	c.NotificationSvc = notifications.NewGateway(
		notifications.NewTwilioSMS(c.Config.TwilioSID, c.Config.TwilioToken, c.Config.TwilioFrom, c.Logger),
		notifications.NewSMTPMailer(c.Config.SMTPHost, c.Config.SMTPPort, c.Config.SMTPUsername, c.Config.SMTPPassword, c.Config.SMTPFrom, c.Logger),
	)
}

// wire builds repositories, services and the router on top of the
// infrastructure fields. Components already set are kept.
func (c *Container) wire() error {
	c.initRepositories()
	if err := c.initServices(); err != nil {
		return err
	}
	if err := middleware.RegisterValidators(); err != nil {
		return err
	}
	c.initRouter()
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.OTPRepo = repositories.NewOTPRepository(c.DB)
	c.ResetRepo = repositories.NewResetTicketRepository(c.DB)
	c.ProductRepo = repositories.NewProductRepository(c.DB)
	c.Revocations = repositories.NewRevocationRepository(c.RedisClient)
}

func (c *Container) initServices() error {
	if c.PasswordSvc == nil {
		c.PasswordSvc = auth.NewPasswordService()
	}
	if c.TokenSvc == nil {
		c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.AccessTTL, c.Config.RefreshTTL)
	}

	c.PolicySvc = services.NewPolicyService(c.Enforcer)
	seeded, err := services.SeedPolicies(c.PolicySvc)
	if err != nil {
		return fmt.Errorf("failed to seed policies: %w", err)
	}
	if seeded {
		c.Logger.Info("casbin: seeded default policies", zap.Int("count", len(services.DefaultProductPolicies)))
	}

	c.OTPSvc = services.NewOTPService(c.OTPRepo, c.UserRepo, c.NotificationSvc, c.Logger, services.OTPConfig{
		TTL: c.Config.OTPTTL,
	})
	c.SessionSvc = services.NewSessionService(c.TokenSvc, c.Revocations, nil)
	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.ResetRepo,
		c.PasswordSvc,
		c.OTPSvc,
		c.SessionSvc,
		c.NotificationSvc,
		c.Logger,
		services.AuthConfig{
			ResetTTL:     c.Config.ResetTTL,
			ResetURLBase: c.Config.PublicURL,
		},
	)
	c.Authorizer = services.NewAuthorizationService(c.PolicySvc, c.Logger)
	c.AccountSvc = services.NewAccountService(c.UserRepo, c.PasswordSvc, c.Authorizer)
	c.ProductSvc = services.NewProductService(c.ProductRepo, c.Authorizer)
	return nil
}

func (c *Container) initRouter() {
	c.Router = httpx.BuildRouter(httpx.Handlers{
		Registration: handlers.NewRegistrationHandlers(c.AuthSvc, c.OTPSvc, c.Logger),
		Auth:         handlers.NewAuthHandlers(c.AuthSvc, c.OTPSvc, c.Logger, c.Config.OTPEchoCode),
		Accounts:     handlers.NewAccountHandlers(c.AccountSvc, c.Logger),
		Products:     handlers.NewProductHandlers(c.ProductSvc, c.Logger),
		Policies:     handlers.NewPolicyHandlers(c.PolicySvc, c.Logger),
	}, middleware.NewAuthMW(c.SessionSvc, c.UserRepo, c.Logger), c.Logger)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
