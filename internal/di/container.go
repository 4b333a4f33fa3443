package di

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wastetrack/internal/auth"
	authconfig "wastetrack/internal/auth/config"
	"wastetrack/internal/shared/eventbus"
	"wastetrack/internal/shared/logger"
	"wastetrack/internal/waste"
	wasteconfig "wastetrack/internal/waste/config"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container wires the application modules and owns their shared
// infrastructure: the MongoDB connection, the optional Redis client and the
// in-memory event bus.
type Container struct {
	mu sync.RWMutex

	AuthModule  *auth.AuthModule
	WasteModule *waste.WasteModule

	MongoClient *mongo.Client
	MongoDB     *mongo.Database
	RedisClient *redis.Client
	EventBus    eventbus.EventBusInterface

	AuthConfig  *authconfig.Config
	WasteConfig *wasteconfig.WasteConfig

	Logger logger.Logger
}

// NewContainer creates an empty DI container
func NewContainer(log logger.Logger) *Container {
	return &Container{
		Logger:   log,
		EventBus: eventbus.NewEventBus(log),
	}
}

// InitializeAuth initializes the authentication module
func (c *Container) InitializeAuth(mongoClient *mongo.Client, mongoDB *mongo.Database, cfg *authconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.MongoClient = mongoClient
	c.MongoDB = mongoDB
	c.AuthConfig = cfg

	authModule, err := auth.NewAuthModule(mongoDB, c.EventBus, cfg)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}

	c.AuthModule = authModule
	return nil
}

// InitializeWaste initializes the waste module. The auth module must be
// initialized first because waste routes reuse its middleware.
func (c *Container) InitializeWaste(cfg *wasteconfig.WasteConfig, redisClient *redis.Client) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.AuthModule == nil {
		return fmt.Errorf("auth module must be initialized before the waste module")
	}
	if c.MongoDB == nil {
		return fmt.Errorf("MongoDB must be initialized before the waste module")
	}

	c.WasteConfig = cfg
	c.RedisClient = redisClient

	wasteModule, err := waste.NewWasteModule(cfg, c.MongoClient, c.MongoDB, redisClient, c.EventBus, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create waste module: %w", err)
	}

	c.WasteModule = wasteModule
	return nil
}

// GetAuthModule returns the auth module instance
func (c *Container) GetAuthModule() *auth.AuthModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthModule
}

// GetWasteModule returns the waste module instance
func (c *Container) GetWasteModule() *waste.WasteModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WasteModule
}

// HealthCheck pings every backing service the container owns.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.MongoClient != nil {
		if err := c.MongoClient.Ping(ctx, nil); err != nil {
			return fmt.Errorf("MongoDB health check failed: %w", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis health check failed: %w", err)
		}
	}

	return nil
}

// Close gracefully releases the container's resources in reverse order of
// initialization.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.WasteModule = nil
	c.AuthModule = nil

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warnf("Failed to close Redis client: %v", err)
		}
		c.RedisClient = nil
	}

	if c.MongoClient != nil {
		if err := c.MongoClient.Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to disconnect MongoDB: %w", err)
		}
		c.MongoClient = nil
		c.MongoDB = nil
	}

	return nil
}
