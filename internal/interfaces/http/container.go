package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orris-inc/warden/internal/domain/catalog"
	"github.com/orris-inc/warden/internal/infrastructure/config"
	"github.com/orris-inc/warden/internal/interfaces/http/middleware"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, services,
// middlewares and handlers. It is responsible for wiring everything together
// and providing a Shutdown() method for graceful termination.
type Container struct {
	// Core infrastructure
	engine  *gin.Engine
	db      *gorm.DB
	tx      *db.TransactionManager
	cfg     *config.Config
	catalog *catalog.Catalog
	log     logger.Interface
	redis   *redis.Client
	version string

	repos *repositories
	svcs  *services
	hdlrs *allHandlers

	// Middlewares
	authMiddleware        *middleware.AuthMiddleware
	permissionMiddleware  *middleware.PermissionMiddleware
	tenantMiddleware      *middleware.TenantMiddleware
	entitlementMiddleware *middleware.EntitlementMiddleware
	loginLimiter          *middleware.RateLimiter
	registerLimiter       *middleware.RateLimiter
}

// NewContainer creates a new Container with all dependencies wired together.
// cat is the permission and feature catalog loaded at startup.
func NewContainer(gdb *gorm.DB, cfg *config.Config, cat *catalog.Catalog, version string, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:  gin.New(),
		db:      gdb,
		cfg:     cfg,
		catalog: cat,
		log:     log,
		version: version,
	}

	// Section 1: Infrastructure - Redis, Repositories, Transactions
	c.initInfrastructure()

	// Section 2: Authorization core
	c.initServices()

	// Section 3: Middlewares
	c.initMiddlewares()

	// Section 4: Handlers
	if err := c.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return c, nil
}

// Engine returns the Gin engine
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases the connections owned by the container. The database is
// closed by its owner.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close Redis client", "error", err)
		}
	}
}
