package container

import (
	"context"
	"fmt"

	"pelada-manager/internal/api"
	"pelada-manager/internal/attendance"
	"pelada-manager/internal/config"
	"pelada-manager/internal/matches"
	"pelada-manager/internal/roster"
	"pelada-manager/internal/session"
	"pelada-manager/pkg/logger"
	"pelada-manager/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	API         *api.Client
	Session     *session.Manager
}

// New creates a new dependency injection container. Redis is optional: when
// it is not configured or unreachable the session falls back to an in-memory
// store scoped to this process.
func New(cfg *config.Config, log *logger.Logger) (*Container, error) {
	var redisClient *redis.Client
	var store session.Store = session.NewMemoryStore()

	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, session will not persist across runs")
		} else {
			redisClient = client
			store = session.NewRedisStore(client)
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, session will not persist across runs")
	}

	apiClient := api.NewClient(cfg, log)
	sessionManager := session.NewManager(apiClient, store, log)

	return &Container{
		Config:      cfg,
		Logger:      log,
		RedisClient: redisClient,
		API:         apiClient,
		Session:     sessionManager,
	}, nil
}

// Health pings the held connections. A nil Redis client is healthy; the
// in-memory fallback has nothing to ping.
func (c *Container) Health(ctx context.Context) error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Health(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Close releases held connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}

// RosterEngine returns a roster engine for the given pelada
func (c *Container) RosterEngine(peladaID int64) *roster.Engine {
	return roster.NewEngine(c.API, c.Logger, peladaID)
}

// MatchEngine returns a match engine for the given pelada
func (c *Container) MatchEngine(peladaID int64, confirm matches.ConfirmFunc) *matches.Engine {
	return matches.NewEngine(c.API, c.Logger, confirm, peladaID)
}

// AttendanceTracker returns an attendance tracker for the given pelada
func (c *Container) AttendanceTracker(peladaID int64) *attendance.Tracker {
	return attendance.NewTracker(c.API, c.Logger, peladaID)
}
