package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"github.com/plotbuild/marketplace/internal/api"
	"github.com/plotbuild/marketplace/internal/core/service"
	"github.com/plotbuild/marketplace/internal/infrastructure/config"
	mongodb "github.com/plotbuild/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/plotbuild/marketplace/internal/infrastructure/db/redis"
	"github.com/plotbuild/marketplace/internal/infrastructure/queue"
	"github.com/plotbuild/marketplace/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("configuration error")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	userRepo := mongodb.NewUserRepository(db)
	plotRepo := mongodb.NewPlotRepository(db)
	requestRepo := mongodb.NewQuoteRequestRepository(db)
	quoteRepo := mongodb.NewQuoteRepository(db)
	contactRepo := mongodb.NewContactRepository(db)
	analysisRepo := mongodb.NewAnalysisRepository(db)
	eventRepo := mongodb.NewEventRepository(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		requestRepo.EnsureIndexes,
		quoteRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Async audit trail ---
	dispatcher := queue.NewDispatcher(cfg.EventWorkers, eventRepo, log)
	dispatcher.Start(ctx)

	// --- Budget advisor (optional) ---
	var genaiClient *genai.Client
	if cfg.Advisor.GeminiAPIKey != "" {
		genaiClient, err = genai.NewClient(ctx, option.WithAPIKey(cfg.Advisor.GeminiAPIKey))
		if err != nil {
			log.Fatal().Err(err).Msg("gemini client failed")
		}
		defer func() {
			_ = genaiClient.Close()
		}()
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, budget advisor disabled")
	}

	// --- Services ---
	svc := api.Services{
		Auth: service.NewAuthService(
			userRepo,
			redisdb.NewRefreshTokenStore(rdb),
			cfg.JWTSecret,
			cfg.AccessTokenTTL,
			cfg.RefreshTokenTTL,
		),
		Plots:   service.NewPlotService(plotRepo, log),
		Quotes:  service.NewQuoteService(requestRepo, quoteRepo, plotRepo, dispatcher, log),
		Users:   service.NewUserService(userRepo),
		Contact: service.NewContactService(contactRepo, log),
		Advisor: service.NewAdvisorService(genaiClient, analysisRepo, cfg.Advisor.Model, log),
	}

	e := api.NewRouter(svc, db, rdb, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
