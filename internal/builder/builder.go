package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/songsmith/internal/api"
	songapi "github.com/futig/songsmith/internal/api/song"
	"github.com/futig/songsmith/internal/config"
	"github.com/futig/songsmith/internal/integration/callback"
	"github.com/futig/songsmith/internal/integration/inference"
	"github.com/futig/songsmith/internal/integration/music"
	"github.com/futig/songsmith/internal/jobstore"
	"github.com/futig/songsmith/internal/pkg/formatter"
	pkglogger "github.com/futig/songsmith/internal/pkg/logger"
	"github.com/futig/songsmith/internal/pkg/validator"
	"github.com/futig/songsmith/internal/repository"
	"github.com/futig/songsmith/internal/usecase/song"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkglogger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.Bool("mocks", cfg.EnableMocks),
	)

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations", zap.String("source", cfg.MigrationsSource))
	if err := repository.RunMigrations(cfg.MigrationsSource, cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	versionRepo := repository.NewSongVersionPostgres(db)
	jobs := jobstore.NewCacheStore(cfg.JobStoreCfg.TTL, cfg.JobStoreCfg.CleanupInterval)

	var musicConnector song.MusicConnector
	var inferenceConnector song.InferenceConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		musicConnector = music.NewMockConnector(jobs, logger)
		inferenceConnector = inference.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		musicConnector = music.NewConnector(cfg.MusicConnectorCfg, logger)
		inferenceConnector = inference.NewConnector(cfg.InferenceConnectorCfg, logger)
	}
	callbackConnector := callback.NewConnector(cfg.CallbackConnectorCfg, logger)

	songUC := song.NewUsecase(
		versionRepo,
		jobs,
		musicConnector,
		inferenceConnector,
		callbackConnector,
		validator.NewValidator(),
		formatter.NewFactory(),
		cfg.GenerationCfg,
		logger,
	)

	router := api.SetupRouter(songapi.NewHandler(songUC), logger)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully")

	return &App{
		server: server,
		db:     db,
		songs:  songUC,
		logger: logger,
	}, nil
}
