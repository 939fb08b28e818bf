package http

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/warden/internal/application/auth"
	"github.com/orris-inc/warden/internal/application/entitlement"
	permissionapp "github.com/orris-inc/warden/internal/application/permission"
	principalapp "github.com/orris-inc/warden/internal/application/principal"
	subscriptionapp "github.com/orris-inc/warden/internal/application/subscription"
	"github.com/orris-inc/warden/internal/application/tenant"
	infraAuth "github.com/orris-inc/warden/internal/infrastructure/auth"
	"github.com/orris-inc/warden/internal/infrastructure/config"
	"github.com/orris-inc/warden/internal/infrastructure/email"
	"github.com/orris-inc/warden/internal/infrastructure/ratelimit"
	"github.com/orris-inc/warden/internal/infrastructure/sanitize"
	infraToken "github.com/orris-inc/warden/internal/infrastructure/token"
	"github.com/orris-inc/warden/internal/interfaces/http/middleware"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/logger"
)

// services holds the application services shared by several handlers.
type services struct {
	tokenStore    *auth.TokenStore
	permissions   *permissionapp.Resolver
	gate          *entitlement.Gate
	subscriptions *subscriptionapp.Service
	tenants       *tenant.Resolver
	memberships   *tenant.MembershipService
	organizations *tenant.OrganizationService

	loginUC                *auth.LoginUseCase
	registerUC             *principalapp.RegisterUseCase
	verifyEmailUC          *principalapp.VerifyEmailUseCase
	passwordResetUC        *principalapp.PasswordResetUseCase
	updateStatusUC         *principalapp.UpdateOperatorStatusUseCase
	updateCustomerStatusUC *principalapp.UpdateCustomerStatusUseCase
	listUsersUC            *principalapp.ListUsersUseCase
}

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Basic Services
// ============================================================

func (c *Container) initInfrastructure() {
	cfg := c.cfg

	if cfg.Redis.Enabled() && cfg.Auth.RateLimit.Enabled {
		c.redis = initRedis(cfg, c.log)
	}

	c.repos = newRepositories(c.db, c.log)
	c.tx = db.NewTransactionManager(c.db)
}

// initRedis connects the login throttle. An unreachable server is logged and
// the limiter then fails open.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, login throttling degraded", "addr", cfg.Redis.GetAddr(), "error", err)
	} else {
		log.Infow("Redis connection established successfully")
	}

	return redisClient
}

// ============================================================
// Section 2: Authorization core - tokens, roles, entitlements, tenants
// ============================================================

func (c *Container) initServices() {
	cfg := c.cfg
	log := c.log
	repos := c.repos

	generator := infraToken.NewGenerator(infraToken.DefaultEntropyBytes)
	hasher := infraAuth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	s := &services{}
	s.tokenStore = auth.NewTokenStore(
		repos.authTokenRepo,
		repos.operatorRepo,
		repos.customerRepo,
		generator,
		sanitize.NewMetadataSanitizer(),
		c.tx,
		auth.StoreConfig{
			MaxLive:  cfg.Auth.Token.MaxLive,
			Validity: cfg.Auth.Token.Validity(),
		},
		log.Named("tokens"),
	)
	s.permissions = permissionapp.NewResolver(
		repos.roleRepo,
		repos.permissionRepo,
		repos.operatorRepo,
		repos.customerRepo,
		c.catalog,
		c.tx,
		log.Named("permissions"),
	)
	s.gate = entitlement.NewGate(repos.planRepo, repos.enrollmentRepo, repos.quotaSlotRepo, log.Named("entitlement"))
	s.subscriptions = subscriptionapp.NewService(
		repos.planRepo,
		repos.featureRepo,
		repos.enrollmentRepo,
		repos.customerRepo,
		c.tx,
		log.Named("subscriptions"),
	)

	s.tenants = tenant.NewResolver(
		repos.organizationRepo,
		repos.membershipRepo,
		repos.customerRepo,
		repos.permissionRepo,
		s.permissions,
		s.gate,
	)
	s.memberships = tenant.NewMembershipService(
		s.tenants,
		repos.membershipRepo,
		repos.roleRepo,
		repos.permissionRepo,
		s.permissions,
		s.gate,
		c.tx,
		cfg.Tenant.DefaultRoleName,
		log.Named("memberships"),
	)
	s.organizations = tenant.NewOrganizationService(
		s.tenants,
		repos.organizationRepo,
		repos.roleRepo,
		repos.permissionRepo,
		s.permissions,
		s.gate,
		c.catalog,
		c.tx,
		cfg.Tenant.DefaultRoleName,
		log.Named("organizations"),
	)

	mailer := email.NewService(cfg.Email, cfg.Server.BaseURL, log.Named("email"))

	s.loginUC = auth.NewLoginUseCase(repos.operatorRepo, repos.customerRepo, hasher, s.tokenStore, log.Named("login"))
	s.registerUC = principalapp.NewRegisterUseCase(repos.operatorRepo, repos.customerRepo, hasher, generator, mailer, log.Named("register"))
	s.verifyEmailUC = principalapp.NewVerifyEmailUseCase(repos.operatorRepo, repos.customerRepo, generator, log.Named("verify_email"))
	s.passwordResetUC = principalapp.NewPasswordResetUseCase(
		repos.operatorRepo, repos.customerRepo, hasher, generator, mailer, s.tokenStore, log.Named("password_reset"),
	)
	s.updateStatusUC = principalapp.NewUpdateOperatorStatusUseCase(repos.operatorRepo, s.permissions, s.tokenStore, log.Named("users"))
	s.updateCustomerStatusUC = principalapp.NewUpdateCustomerStatusUseCase(repos.customerRepo, s.tokenStore, log.Named("users"))
	s.listUsersUC = principalapp.NewListUsersUseCase(repos.operatorRepo, repos.customerRepo)

	c.svcs = s
}

// ============================================================
// Section 3: Middlewares
// ============================================================

func (c *Container) initMiddlewares() {
	cfg := c.cfg
	log := c.log

	c.authMiddleware = middleware.NewAuthMiddleware(c.svcs.tokenStore, cfg.Auth.Token.Header, log.Named("auth"))
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.svcs.permissions, log.Named("permission"))
	c.tenantMiddleware = middleware.NewTenantMiddleware(c.svcs.tenants, cfg.Tenant.Header, log.Named("tenant"))
	c.entitlementMiddleware = middleware.NewEntitlementMiddleware(c.svcs.gate, log.Named("entitlement"))

	var limiter ratelimit.RateLimiter
	if c.redis != nil {
		limiter = ratelimit.NewRedisRateLimiter(c.redis)
	}
	limits := ratelimit.RateLimitConfig{
		RequestsPerMinute: cfg.Auth.RateLimit.RequestsPerMinute,
		RequestsPerHour:   cfg.Auth.RateLimit.RequestsPerHour,
	}
	c.loginLimiter = middleware.NewRateLimiter(limiter, limits, "login", log.Named("ratelimit"))
	c.registerLimiter = middleware.NewRateLimiter(limiter, limits, "register", log.Named("ratelimit"))
}
