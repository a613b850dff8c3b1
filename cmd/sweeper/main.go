package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/clipforge/clipforge-backend/internal/config"
	"github.com/clipforge/clipforge-backend/internal/engines"
	"github.com/clipforge/clipforge-backend/internal/sweeper"
	taskRepository "github.com/clipforge/clipforge-backend/internal/videotasks/repository"
	taskUsecase "github.com/clipforge/clipforge-backend/internal/videotasks/usecase"
	"github.com/clipforge/clipforge-backend/pkg/db/aws"
	"github.com/clipforge/clipforge-backend/pkg/db/postgres"
	"github.com/clipforge/clipforge-backend/pkg/db/redis"
	"github.com/clipforge/clipforge-backend/pkg/logger"
	"time"
)

func main() {
	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}
	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %s", err)
	}
	defer psqlDB.Close()

	redisClient, err := redis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %s", err)
	}
	defer redisClient.Close()

	s3Client, _, err := aws.NewAWSClient(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		appLogger.Fatalf("could not connect to s3: %s", err)
	}

	taskRepo := taskRepository.NewTaskRepo(psqlDB)
	awsRepo := taskRepository.NewAwsRepository(s3Client, cfg)
	cacheTTL := time.Duration(cfg.Poller.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Second
	}
	redisRepo := taskRepository.NewStatusCacheRepo(redisClient, cfg.Redis.StatusPrefix, cacheTTL)
	provider := engines.NewProvider(cfg)
	taskUC := taskUsecase.NewVideoTaskUseCase(cfg, taskRepo, redisRepo, awsRepo, provider, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Infof("Shutting down sweeper")
		cancel()
	}()

	sweeper.NewSweeper(cfg, taskUC, appLogger).Run(ctx)
}
