package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	// Packages
	toolset "github.com/mutablelogic/go-toolset"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	redis "github.com/redis/go-redis/v9"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config for the redis cache
type Config struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	Logger   *zap.Logger   `yaml:"-" json:"-"`
}

// Redis is a cache shared between server instances
type Redis struct {
	client *redis.Client
	config Config
	logger *zap.Logger
}

var _ Cache = (*Redis)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultPrefix = "toolset:connection:"
	pingTimeout   = 5 * time.Second
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewRedis connects to a redis server and returns the cache. The server is
// pinged before returning.
func NewRedis(ctx context.Context, config Config) (*Redis, error) {
	if config.Addr == "" {
		return nil, toolset.ErrBadParameter.With("redis address is required")
	}
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	if config.Prefix == "" {
		config.Prefix = DefaultPrefix
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to connect to redis: %w", err), client.Close())
	}

	self := &Redis{
		client: client,
		config: config,
		logger: logger.With(zap.String("component", "cache")),
	}
	self.logger.Debug("redis cache initialized", zap.String("addr", config.Addr), zap.Duration("ttl", config.TTL))
	return self, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (r *Redis) Get(ctx context.Context, entity, app string) (*schema.Connection, error) {
	key := r.key(entity, app)
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, toolset.ErrNotFound.Withf("connection %q", key)
	} else if err != nil {
		r.logger.Error("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var conn schema.Connection
	if err := json.Unmarshal(data, &conn); err != nil {
		// Drop entries which cannot be decoded
		r.logger.Warn("cache entry invalid", zap.String("key", key), zap.Error(err))
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return nil, fmt.Errorf("cache delete failed: %w", err)
		}
		return nil, toolset.ErrNotFound.Withf("connection %q", key)
	}
	return &conn, nil
}

// Set stores an active connection with the configured ttl. Other
// connections remove any existing entry for the entity and app.
func (r *Redis) Set(ctx context.Context, conn *schema.Connection) error {
	if err := validate(conn); err != nil {
		return err
	}
	if !conn.IsActive() {
		return r.Delete(ctx, conn.Entity, conn.App)
	}

	data, err := json.Marshal(conn)
	if err != nil {
		return err
	}
	key := r.key(conn.Entity, conn.App)
	if err := r.client.Set(ctx, key, data, r.config.TTL).Err(); err != nil {
		r.logger.Error("cache set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, entity, app string) error {
	key := r.key(entity, app)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("cache delete failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete failed: %w", err)
	}
	return nil
}

// Close the connection to the redis server
func (r *Redis) Close() error {
	return r.client.Close()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (r *Redis) key(entity, app string) string {
	return r.config.Prefix + key(entity, app)
}
