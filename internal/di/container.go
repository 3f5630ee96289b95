package di

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"sheltercms/internal/schema"
	"sheltercms/internal/schema/config"
	"sheltercms/internal/shared/logger"
)

// Container holds the application's modules and shared infrastructure with
// proper lifecycle management.
type Container struct {
	mu           sync.RWMutex
	SchemaModule *schema.Module
	MongoDB      *mongo.Database
	RedisClient  *redis.Client
	SchemaConfig *config.Config
	Logger       logger.Logger
}

// NewContainer creates a new DI container.
func NewContainer(log logger.Logger) *Container {
	return &Container{Logger: log}
}

// InitializeSchema initializes the schema module. redisClient may be nil to
// run without the section cache.
func (c *Container) InitializeSchema(mongoDB *mongo.Database, redisClient *redis.Client, cfg *config.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mongoDB == nil {
		return fmt.Errorf("MongoDB must be initialized before the schema module")
	}
	if c.Logger == nil {
		c.Logger = logger.NewLogger()
	}

	c.MongoDB = mongoDB
	c.RedisClient = redisClient
	c.SchemaConfig = cfg

	module, err := schema.NewModule(cfg, mongoDB, redisClient, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create schema module: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := module.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	c.SchemaModule = module
	return nil
}

// GetSchemaModule returns the schema module instance.
func (c *Container) GetSchemaModule() *schema.Module {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SchemaModule
}

// HealthCheck pings the backing stores.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.MongoDB != nil {
		if err := c.MongoDB.Client().Ping(ctx, nil); err != nil {
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

// Close gracefully shuts down the container's modules and connections.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.SchemaModule != nil {
		if err := c.SchemaModule.Stop(); err != nil {
			c.Logger.Error("Failed to stop schema module", "error", err)
		}
		c.SchemaModule = nil
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Error("Failed to close Redis client", "error", err)
		}
		c.RedisClient = nil
	}
	return nil
}
