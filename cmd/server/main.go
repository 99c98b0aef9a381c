package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisCache "github.com/sahilraj3324/Hello-Rommie-Backend/internal/adapter/cache/redis"
	mongoAdapter "github.com/sahilraj3324/Hello-Rommie-Backend/internal/adapter/mongo"
	natsAdapter "github.com/sahilraj3324/Hello-Rommie-Backend/internal/adapter/nats"
	smsAdapter "github.com/sahilraj3324/Hello-Rommie-Backend/internal/adapter/sms"
	storageAdapter "github.com/sahilraj3324/Hello-Rommie-Backend/internal/adapter/storage"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/config"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/platform/metrics"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/platform/tracer"
	httpPort "github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/http"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/port/sms"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("FATAL: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	logger.Info("Application starting",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort))

	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	mongoClient, err := mongoAdapter.NewMongoDBConnection(cfg.Mongo())
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 10*time.Second)
	profileRepo, err := mongoAdapter.NewProfileMongoRepository(indexCtx, mongoClient, cfg.MongoDatabase)
	indexCancel()
	if err != nil {
		logger.Fatal("Failed to initialize profile repository", zap.Error(err))
	}
	roomRepo := mongoAdapter.NewRoomMongoRepository(mongoClient, cfg.MongoDatabase)
	itemRepo := mongoAdapter.NewItemMongoRepository(mongoClient, cfg.MongoDatabase)

	profileCache, err := redisCache.NewProfileCache(cfg.RedisAddress)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer profileCache.Close()
	logger.Info("Connected to Redis", zap.String("address", cfg.RedisAddress))

	publisher, err := natsAdapter.NewPublisher(cfg.NATSURL)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()
	logger.Info("Connected to NATS", zap.String("url", cfg.NATSURL))

	photoStorage, err := storageAdapter.NewS3Storage(
		cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize photo storage", zap.Error(err))
	}

	var smsSender sms.Sender
	if cfg.SMSProvider == "twilio" {
		smsSender, err = smsAdapter.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Twilio sender", zap.Error(err))
		}
	} else {
		smsSender = smsAdapter.NewConsoleSender(logger)
	}

	hasher := usecase.NewBcryptHasher()
	otps := usecase.NewOTPGenerator(cfg.OTPTTL)
	tokens := usecase.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	authUC := usecase.NewAuthUsecase(profileRepo, hasher, otps, tokens, smsSender, publisher, logger)
	profileUC := usecase.NewProfileUsecase(profileRepo, profileCache, publisher, logger)
	roomUC := usecase.NewRoomUsecase(roomRepo, photoStorage, publisher, logger)
	itemUC := usecase.NewItemUsecase(itemRepo, photoStorage, publisher, logger)

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)
	go func() {
		if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, logger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	authHandler := httpPort.NewAuthHandler(authUC, metricsManager, logger)
	profileHandler := httpPort.NewProfileHandler(profileUC, metricsManager, logger)
	roomHandler := httpPort.NewRoomHandler(roomUC, metricsManager, logger)
	itemHandler := httpPort.NewItemHandler(itemUC, metricsManager, logger)
	authMiddleware := httpPort.NewAuthMiddleware(tokens, profileRepo, profileCache, logger)

	router := httpPort.NewRouter(authHandler, profileHandler, roomHandler, itemHandler, authMiddleware, metricsManager)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
