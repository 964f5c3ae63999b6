package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/vakilyar/marketplace-backend/internal/adapters/database"
	"github.com/vakilyar/marketplace-backend/internal/adapters/kv"
	"github.com/vakilyar/marketplace-backend/internal/adapters/search"
	"github.com/vakilyar/marketplace-backend/internal/adapters/store"
	"github.com/vakilyar/marketplace-backend/internal/application/services"
	"github.com/vakilyar/marketplace-backend/internal/domain/entities"
	"github.com/vakilyar/marketplace-backend/internal/domain/providers"
	"github.com/vakilyar/marketplace-backend/internal/domain/repositories"
	"github.com/vakilyar/marketplace-backend/internal/infrastructure/clients/postgres"
	redisclient "github.com/vakilyar/marketplace-backend/internal/infrastructure/clients/redis"
	tsclient "github.com/vakilyar/marketplace-backend/internal/infrastructure/clients/typesense"
	"github.com/vakilyar/marketplace-backend/pkg/config"
)

// Seeds a development environment: relational schema, a few lawyer profiles
// with pricing and a month of availability, and the search index.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx := context.Background()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pgClient.Close()

	var kvStore providers.KVStore
	redisCli, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, seeding schedules into memory only")
		kvStore = kv.NewMemoryAdapter()
	} else {
		defer redisCli.Close()
		kvStore = kv.NewRedisAdapter(redisCli)
	}

	var searchRepo repositories.LawyerSearchRepository
	if tsCli, err := tsclient.NewClient(&cfg.Typesense); err == nil {
		adapter := search.NewTypesenseAdapter(tsCli)
		if err := adapter.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize search schema")
		} else {
			searchRepo = adapter
		}
	}

	if err := createSchema(ctx, pgClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to create schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE bookings, questions, lawyers RESTART IDENTITY CASCADE
		`); err != nil {
			log.Fatal().Err(err).Msg("Failed to truncate tables")
		}
	}

	lawyerService := services.NewLawyerService(database.NewLawyerAdapter(pgClient), searchRepo)
	scheduleService := services.NewScheduleService(store.NewTemplateAdapter(kvStore), store.NewSlotAdapter(kvStore))
	scheduleService.SetHorizon(cfg.Schedule.HorizonDays)
	pricingService := services.NewPricingService(store.NewPricingAdapter(kvStore))

	lawyers := []*entities.Lawyer{
		{ID: "lawyer-demo-1", Name: "Sara Ahmadi", Specialty: "family", City: "Tehran", Bio: "Family law, 12 years of practice.", LicenseNo: "T-48219", Rating: 4.8},
		{ID: "lawyer-demo-2", Name: "Reza Karimi", Specialty: "criminal", City: "Mashhad", Bio: "Criminal defense.", LicenseNo: "M-10277", Rating: 4.5},
		{ID: "lawyer-demo-3", Name: "Leila Hosseini", Specialty: "contracts", City: "Tehran", Rating: 4.2},
	}

	for _, lawyer := range lawyers {
		if err := lawyerService.Register(ctx, lawyer); err != nil {
			log.Error().Err(err).Str("lawyer_id", lawyer.ID).Msg("Failed to seed lawyer")
			continue
		}

		// Default weekly template, materialized a month out
		if err := scheduleService.ApplyTemplateToRange(ctx, lawyer.ID, "2026-09-01", "2026-09-30"); err != nil {
			log.Error().Err(err).Str("lawyer_id", lawyer.ID).Msg("Failed to seed slots")
		}
		if err := pricingService.ApplyGlobalPercentage(ctx, lawyer.ID, entities.DefaultPhonePercentage, entities.DefaultVideoPercentage); err != nil {
			log.Error().Err(err).Str("lawyer_id", lawyer.ID).Msg("Failed to seed pricing")
		}
		log.Info().Str("lawyer_id", lawyer.ID).Msg("Seeded lawyer")
	}

	log.Info().Msg("Seeding complete")
}

func createSchema(ctx context.Context, pgClient *postgres.Client) error {
	_, err := pgClient.DB().ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS lawyers (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			specialty     TEXT NOT NULL,
			city          TEXT NOT NULL DEFAULT '',
			bio           TEXT,
			license_no    TEXT,
			rating        DOUBLE PRECISION NOT NULL DEFAULT 0,
			consult_count INTEGER NOT NULL DEFAULT 0,
			is_active     BOOLEAN NOT NULL DEFAULT TRUE,
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS bookings (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			lawyer_id   TEXT NOT NULL REFERENCES lawyers(id),
			slot_id     TEXT NOT NULL,
			slot_date   TEXT NOT NULL,
			pricing_id  TEXT NOT NULL,
			duration    TEXT NOT NULL,
			channel     TEXT NOT NULL,
			price       INTEGER NOT NULL,
			status      TEXT NOT NULL,
			payment_ref TEXT,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);
		CREATE INDEX IF NOT EXISTS idx_bookings_lawyer ON bookings(lawyer_id);

		CREATE TABLE IF NOT EXISTS questions (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			category   TEXT NOT NULL,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL,
			status     TEXT NOT NULL,
			answer     TEXT,
			lawyer_id  TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_questions_status ON questions(status);
	`)
	return err
}
