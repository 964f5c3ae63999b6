package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/vakilyar/marketplace-backend/internal/adapters/database"
	"github.com/vakilyar/marketplace-backend/internal/adapters/events"
	"github.com/vakilyar/marketplace-backend/internal/adapters/kv"
	"github.com/vakilyar/marketplace-backend/internal/adapters/payments"
	"github.com/vakilyar/marketplace-backend/internal/adapters/search"
	"github.com/vakilyar/marketplace-backend/internal/adapters/store"
	"github.com/vakilyar/marketplace-backend/internal/api/handlers"
	"github.com/vakilyar/marketplace-backend/internal/api/routes"
	"github.com/vakilyar/marketplace-backend/internal/application/services"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
	"github.com/vakilyar/marketplace-backend/internal/infrastructure/clients/postgres"
	redisclient "github.com/vakilyar/marketplace-backend/internal/infrastructure/clients/redis"
	tsclient "github.com/vakilyar/marketplace-backend/internal/infrastructure/clients/typesense"
	"github.com/vakilyar/marketplace-backend/internal/infrastructure/observability"
	"github.com/vakilyar/marketplace-backend/pkg/config"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger("legal-marketplace-api", cfg.Env)

	ctx := context.Background()

	// OpenTelemetry setup (optional)
	if cfg.OTEL.Enabled {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry, continuing without it")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Warn().Err(err).Msg("Failed to shut down OpenTelemetry")
				}
			}()
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize metrics")
	}

	// Schedule state store: Redis when available, in-memory otherwise
	var kvStore providers.KVStore
	var eventBus providers.EventBus
	redisCli, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory schedule store")
		kvStore = kv.NewMemoryAdapter()
	} else {
		defer redisCli.Close()
		redisKV := kv.NewRedisAdapter(redisCli)
		redisKV.SetMetrics(metrics)
		kvStore = redisKV
		eventBus = events.NewRedisEventBus(redisCli.Client())
		defer eventBus.Close()
	}

	// Postgres for bookings, lawyers and questions
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pgClient.Close()

	// Typesense for the lawyer directory (optional)
	var searchRepo *search.TypesenseAdapter
	tsCli, err := tsclient.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Typesense unavailable, lawyer search falls back to the database")
	} else {
		searchRepo = search.NewTypesenseAdapter(tsCli)
		if err := searchRepo.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize search schema")
			searchRepo = nil
		}
	}

	// Repositories
	templateRepo := store.NewTemplateAdapter(kvStore)
	slotRepo := store.NewSlotAdapter(kvStore)
	pricingRepo := store.NewPricingAdapter(kvStore)
	bookingRepo := database.NewBookingAdapter(pgClient)
	lawyerRepo := database.NewLawyerAdapter(pgClient)
	questionRepo := database.NewQuestionAdapter(pgClient)

	// Services
	scheduleService := services.NewScheduleService(templateRepo, slotRepo)
	scheduleService.SetHorizon(cfg.Schedule.HorizonDays)
	pricingService := services.NewPricingService(pricingRepo)
	if eventBus != nil {
		scheduleService.SetEventBus(eventBus)
		pricingService.SetEventBus(eventBus)
	}
	if metrics != nil {
		scheduleService.SetMetrics(metrics)
	}

	bookingService := services.NewBookingService(bookingRepo, pricingRepo, scheduleService, payments.NewMockProvider())
	if metrics != nil {
		bookingService.SetMetrics(metrics)
	}

	var lawyerService *services.LawyerService
	if searchRepo != nil {
		lawyerService = services.NewLawyerService(lawyerRepo, searchRepo)
	} else {
		lawyerService = services.NewLawyerService(lawyerRepo, nil)
	}
	questionService := services.NewQuestionService(questionRepo, lawyerRepo)

	// HTTP layer
	router := routes.NewRouter(
		handlers.NewLawyerHandler(lawyerService),
		handlers.NewScheduleHandler(scheduleService),
		handlers.NewPricingHandler(pricingService),
		handlers.NewBookingHandler(bookingService),
		handlers.NewQuestionHandler(questionService),
		metrics,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("Server stopped")
}
