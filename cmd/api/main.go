package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/export"
	"shareit/internal/logging"
	"shareit/internal/metrics"
	"shareit/internal/models"
	"shareit/internal/repository"
	"shareit/internal/service"
	"shareit/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	yamlv2 "gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	if cfg.Seed.Path != "" {
		if err := applySeed(db, cfg.Seed.Path, &logger); err != nil {
			return err
		}
	}

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	metrics.Register()

	bus := events.NewEventBus()
	exporter := export.NewExporter(db, cfg.Exports.Path)
	reportWorker := worker.NewReportWorker(exporter, &logger)
	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingApproved,
		events.EventBookingRejected,
	} {
		bus.Subscribe(eventType, func(*events.Event) error {
			reportWorker.Enqueue()
			return nil
		})
	}

	deps := api.Deps{
		Bookings: service.NewBookingService(db, bus, &logger),
		Items:    service.NewItemService(db, &logger),
		Users:    service.NewUserService(db, &logger),
		Requests: service.NewRequestService(db, &logger),
		Exporter: exporter,
		Limiter:  buildLimiter(cfg, redisClient, &logger),
	}
	httpServer := api.NewHTTPServer(cfg.HTTP, cfg.Listing.DefaultPageSize, deps, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reportWorker.Start(ctx)
	startMetrics(ctx, cfg, &logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	logger.Info().Msg("server stopped")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

type seedFile struct {
	Users []struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	} `yaml:"users"`
	Items []struct {
		OwnerID     int64  `yaml:"owner_id"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Available   bool   `yaml:"available"`
	} `yaml:"items"`
}

// applySeed loads users and items from a yaml file into a fresh database.
// A database that already has users is left untouched.
func applySeed(db *database.DB, path string, logger *zerolog.Logger) error {
	ctx := context.Background()

	existing, err := db.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error().Err(err).Str("seed_path", path).Msg("read seed file")
		return err
	}

	var seed seedFile
	if err := yamlv2.Unmarshal(data, &seed); err != nil {
		logger.Error().Err(err).Str("seed_path", path).Msg("parse seed file")
		return err
	}

	for _, u := range seed.Users {
		if err := db.CreateUser(ctx, &models.User{Name: u.Name, Email: u.Email}); err != nil {
			return err
		}
	}
	for _, i := range seed.Items {
		item := &models.Item{
			OwnerID:     i.OwnerID,
			Name:        i.Name,
			Description: i.Description,
			Available:   i.Available,
		}
		if err := db.CreateItem(ctx, item); err != nil {
			return err
		}
	}

	logger.Info().Int("users", len(seed.Users)).Int("items", len(seed.Items)).Msg("seed applied")
	return nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	client := repository.NewRedisClient(cfg.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := repository.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Redis.Address).Msg("redis unavailable, rate limiting falls back to memory")
	}
	return client
}

func buildLimiter(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	window := time.Duration(cfg.RateLimit.Window) * time.Second
	memory := repository.NewMemoryLimiter(cfg.RateLimit.Requests, window)
	if redisClient == nil {
		return repository.NewFailoverLimiter(memory, memory, logger)
	}

	primary := repository.NewRedisLimiter(redisClient, cfg.RateLimit.Requests, window)
	return repository.NewFailoverLimiter(primary, memory, logger)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("metrics listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}
