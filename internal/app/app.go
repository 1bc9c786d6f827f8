package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fatiguelens/internal/advisor"
	"fatiguelens/internal/audit"
	"fatiguelens/internal/cache"
	"fatiguelens/internal/classifier"
	"fatiguelens/internal/config"
	"fatiguelens/internal/db"
	httpserver "fatiguelens/internal/http"
	"fatiguelens/internal/http/handlers"
	"fatiguelens/internal/metrics"
	"fatiguelens/internal/redisclient"
	"fatiguelens/internal/redisstore"
	"fatiguelens/internal/repository"
	"fatiguelens/internal/scoring"
	"fatiguelens/internal/service"
)

// App wires fatigue service dependencies.
type App struct {
	server      *httpserver.Server
	auditLog    *audit.Logger
	pool        *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	pool, err := db.NewPostgresDB(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	repo := repository.NewPredictionRepository(pool)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}

	model, err := scoring.Load(cfg.Model.Path)
	if err != nil {
		pool.Close()
		return nil, err
	}

	ladder, err := classifier.FromConfig(cfg.Policy.Ladder)
	if err != nil {
		pool.Close()
		return nil, err
	}

	var redisClient *redis.Client
	var mirror *redisstore.Store
	if cfg.Redis.Addr != "" {
		redisClient, err = redisclient.New(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			pool.Close()
			return nil, err
		}
		mirror = redisstore.NewStore(redisClient)
	}

	m := metrics.New()

	auditLog := audit.NewLogger(repo, audit.Options{
		Workers:      cfg.Audit.Workers,
		QueueSize:    cfg.Audit.QueueSize,
		MaxAttempts:  cfg.Audit.MaxAttempts,
		RetryDelay:   cfg.AuditRetryDelay(),
		WriteTimeout: cfg.AuditWriteTimeout(),
	}, m, logger)

	policy := advisor.Policy{
		ScreenTimeThresholdHours:  cfg.Policy.ScreenTimeThresholdHours,
		HighFatigueScore:          cfg.Policy.HighFatigueScore,
		SocialMediaThresholdHours: cfg.Policy.SocialMediaThresholdHours,
		SocialMediaAdvisory:       cfg.Policy.SocialMediaAdvisory,
	}

	predictionService := service.NewPredictionService(
		model,
		ladder,
		policy,
		auditLog,
		cache.New(),
		mirror,
		m,
		logger,
	)

	predictHandler := handlers.NewPredictHandler(predictionService, logger)

	routes := httpserver.Routes{
		Predict:  predictHandler.Handle,
		Health:   handlers.NewHealthHandler(),
		Metrics:  m.Handler(),
		NotFound: handlers.NewNotFoundHandler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		auditLog:    auditLog,
		pool:        pool,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close drains the audit queue and releases resources.
func (a *App) Close() {
	if a.auditLog != nil {
		a.auditLog.Close()
	}
	if a.pool != nil {
		if err := a.pool.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
