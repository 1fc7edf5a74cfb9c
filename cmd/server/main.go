package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	httpadapter "github.com/tharun69CS/EcoFinds/internal/adapter/http"
	"github.com/tharun69CS/EcoFinds/internal/adapter/http/handler"
	"github.com/tharun69CS/EcoFinds/internal/adapter/messaging/nats"
	"github.com/tharun69CS/EcoFinds/internal/adapter/repository/cache"
	"github.com/tharun69CS/EcoFinds/internal/adapter/repository/mongodb"
	"github.com/tharun69CS/EcoFinds/internal/adapter/storage/s3"
	"github.com/tharun69CS/EcoFinds/internal/auth"
	"github.com/tharun69CS/EcoFinds/internal/config"
	listingusecase "github.com/tharun69CS/EcoFinds/internal/listing/usecase"
	"github.com/tharun69CS/EcoFinds/internal/mailer"
	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
	"github.com/tharun69CS/EcoFinds/internal/platform/tracer"
	userusecase "github.com/tharun69CS/EcoFinds/internal/user/usecase"
)

const serviceName = "ecofinds-listing-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPEndpoint != "" {
		tp, err := tracer.Init(ctx, serviceName, cfg.OTLPEndpoint)
		if err != nil {
			log.Fatalf("Failed to initialize tracer: %v", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				appLogger.Warn("Tracer shutdown failed", "error", err.Error())
			}
		}()
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	listingRepo := mongodb.NewListingRepository(ctx, db, appLogger)
	userRepo := mongodb.NewUserRepository(ctx, db, appLogger)

	var listingCache listingusecase.ListingCache
	if cfg.RedisAddress != "" {
		redisCache, err := cache.NewListingCache(ctx, cfg.RedisAddress)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		listingCache = redisCache
	}

	var publisher listingusecase.EventPublisher
	if cfg.NATSURL != "" {
		natsPublisher, err := nats.NewPublisher(cfg.NATSURL, appLogger)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	var listingMailer listingusecase.Mailer
	if cfg.SMTPEmail != "" {
		listingMailer = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	}

	storage, err := s3.NewObjectStorage(ctx, cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	resolver := auth.NewResolver(tokens, userRepo, appLogger)

	listingUC := listingusecase.NewListingUsecase(listingRepo, listingCache, publisher, listingMailer, appLogger)
	assetUC := listingusecase.NewAssetUsecase(storage, appLogger)
	userUC := userusecase.NewUserUsecase(userRepo, appLogger)

	router := httpadapter.NewRouter(
		httpadapter.RouterConfig{
			ServiceName: serviceName,
			CORSOrigins: cfg.CORSOrigins,
			Tracing:     cfg.OTLPEndpoint != "",
		},
		handler.NewAuthHandler(userUC, tokens, appLogger),
		handler.NewListingHandler(listingUC, appLogger),
		handler.NewUploadHandler(assetUC, appLogger),
		resolver,
		appLogger,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		appLogger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", "error", err.Error())
	}
}
