package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/penca-app/penca-api/internal/config"
	"github.com/penca-app/penca-api/internal/domain/award"
	"github.com/penca-app/penca-api/internal/domain/divisional"
	"github.com/penca-app/penca-api/internal/domain/joinrequest"
	"github.com/penca-app/penca-api/internal/domain/match"
	"github.com/penca-app/penca-api/internal/domain/matchday"
	"github.com/penca-app/penca-api/internal/domain/participant"
	"github.com/penca-app/penca-api/internal/domain/pool"
	"github.com/penca-app/penca-api/internal/domain/prediction"
	"github.com/penca-app/penca-api/internal/domain/team"
	"github.com/penca-app/penca-api/internal/infrastructure/account/accounts"
	cacherepo "github.com/penca-app/penca-api/internal/infrastructure/repository/cache"
	"github.com/penca-app/penca-api/internal/infrastructure/repository/postgres"
	"github.com/penca-app/penca-api/internal/interfaces/httpapi"
	basecache "github.com/penca-app/penca-api/internal/platform/cache"
	idgen "github.com/penca-app/penca-api/internal/platform/id"
	"github.com/penca-app/penca-api/internal/platform/logging"
	"github.com/penca-app/penca-api/internal/platform/resilience"
	"github.com/penca-app/penca-api/internal/usecase"
)

// NewHTTPServer wires the repositories, services, and HTTP surface.
// The returned cleanup closes the database pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	cleanup := func(context.Context) error {
		return db.Close()
	}

	var (
		poolRepo        pool.Repository        = postgres.NewPoolRepository(db)
		teamRepo        team.Repository        = postgres.NewTeamRepository(db)
		divisionalRepo  divisional.Repository  = postgres.NewDivisionalRepository(db)
		matchdayRepo    matchday.Repository    = postgres.NewMatchdayRepository(db)
		matchRepo       match.Repository       = postgres.NewMatchRepository(db)
		participantRepo participant.Repository = postgres.NewParticipantRepository(db)
		joinRequestRepo joinrequest.Repository = postgres.NewJoinRequestRepository(db)
		predictionRepo  prediction.Repository  = postgres.NewPredictionRepository(db)
		awardRepo       award.Repository       = postgres.NewAwardRepository(db)
	)

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		poolRepo = cacherepo.NewPoolRepository(poolRepo, store)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
		divisionalRepo = cacherepo.NewDivisionalRepository(divisionalRepo, store)
		matchdayRepo = cacherepo.NewMatchdayRepository(matchdayRepo, store)
		matchRepo = cacherepo.NewMatchRepository(matchRepo, store)
		participantRepo = cacherepo.NewParticipantRepository(participantRepo, store)
		predictionRepo = cacherepo.NewPredictionRepository(predictionRepo, store)
	}

	ids := idgen.NewRandomGenerator()

	poolSvc := usecase.NewPoolService(poolRepo, teamRepo, divisionalRepo, matchdayRepo, matchRepo, ids, logger)
	scheduleSvc := usecase.NewScheduleService(poolRepo, teamRepo, divisionalRepo, matchdayRepo, matchRepo, ids, logger)
	membershipSvc := usecase.NewMembershipService(poolRepo, participantRepo, joinRequestRepo, logger)
	predictionSvc := usecase.NewPredictionService(poolRepo, matchRepo, participantRepo, predictionRepo, logger)
	publicationSvc := usecase.NewPublicationService(
		poolRepo,
		matchRepo,
		participantRepo,
		predictionRepo,
		awardRepo,
		cfg.PublicationWorkers,
		logger,
	)

	verifier := accounts.NewClient(accounts.Config{
		BaseURL:        cfg.AccountsBaseURL,
		IntrospectPath: cfg.AccountsIntrospectPath,
		AdminKey:       cfg.AccountsAdminKey,
		Timeout:        cfg.AccountsTimeout,
		CacheTTL:       cfg.AccountsSessionCacheTTL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountsCircuitEnabled,
			FailureThreshold: cfg.AccountsCircuitFailureCount,
			OpenTimeout:      cfg.AccountsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AccountsCircuitHalfOpenMax,
		},
		Logger: logger,
	})

	handler := httpapi.NewHandler(poolSvc, scheduleSvc, membershipSvc, predictionSvc, publicationSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = db.Close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	opts := []otelsql.Option{
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Connect("postgres", dsn, opts...)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}
