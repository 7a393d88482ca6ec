package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"freight/cmd"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/redislock"
	"freight/internal/adapters/out/s3labels"
	"freight/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig(".")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if err := logger.Init(config.Environment, config.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *config, logger.Get()); err != nil {
		logger.Get().Fatal("application stopped", zap.Error(err))
	}
}

func run(ctx context.Context, config cmd.Config, appLogger *zap.Logger) error {
	db, err := gorm.Open(pgdriver.Open(config.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	redisClient, err := redislock.NewClient(config.Redis.URL)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	s3Client, err := s3labels.NewS3Client(ctx, s3labels.Config{
		Region:          config.Labels.Region,
		AccessKeyID:     config.Labels.AccessKeyID,
		SecretAccessKey: config.Labels.SecretAccessKey,
		Bucket:          config.Labels.Bucket,
		Endpoint:        config.Labels.Endpoint,
	})
	if err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(config, db, redisClient, s3Client, appLogger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter()
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		address := fmt.Sprintf("0.0.0.0:%d", config.HTTPPort)
		appLogger.Info("http server starting", zap.String("address", address))
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	appLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
