package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"wifiportal/internal/cache"
	"wifiportal/internal/config"
	"wifiportal/internal/database"
	"wifiportal/internal/log"
	"wifiportal/internal/queue"
	"wifiportal/internal/repository"
	"wifiportal/internal/service"
	"wifiportal/internal/storage"
	"wifiportal/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, "worker")

	ctx := context.Background()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}
	defer dbPool.Close()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer redisClient.Close()

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init object store")
	}

	tenantRepo := repository.NewTenantRepository(dbPool)
	paymentRepo := repository.NewPaymentRepository(dbPool)
	events := queue.NewPublisher(redisClient, cfg.Redis.Stream)
	tenantService := service.NewTenantService(tenantRepo, paymentRepo, objectStore, events, cfg.Access, logger)

	dispatcher := tasks.NewControllerDispatcher(cfg.Access.ControllerURL, logger)
	processor := tasks.NewProcessor(dispatcher, tenantService, logger)

	consumer := queue.NewConsumer(
		redisClient,
		cfg.Redis.Stream,
		cfg.Redis.Group,
		cfg.Redis.Consumer,
		cfg.Worker.ClaimInterval,
		logger,
		processor,
	)
	if err := consumer.EnsureGroup(ctx); err != nil {
		logger.Fatal().Err(err).Msg("consumer group setup failed")
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := consumer.Start(runCtx); err != nil && err != context.Canceled {
			logger.Fatal().Err(err).Msg("consumer stopped unexpectedly")
		}
	}()

	<-runCtx.Done()
	logger.Info().Msg("shutdown signal received")
	time.Sleep(500 * time.Millisecond)
}
