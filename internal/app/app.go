package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/realitygames/fantasy-league/external/sms"
	"github.com/realitygames/fantasy-league/external/stripe"
	"github.com/realitygames/fantasy-league/internal/config"
	"github.com/realitygames/fantasy-league/internal/domain/castaway"
	"github.com/realitygames/fantasy-league/internal/domain/draft"
	"github.com/realitygames/fantasy-league/internal/domain/league"
	"github.com/realitygames/fantasy-league/internal/domain/pick"
	"github.com/realitygames/fantasy-league/internal/domain/roster"
	"github.com/realitygames/fantasy-league/internal/domain/scoring"
	"github.com/realitygames/fantasy-league/internal/domain/season"
	"github.com/realitygames/fantasy-league/internal/domain/user"
	"github.com/realitygames/fantasy-league/internal/infrastructure/account/supabase"
	cacherepo "github.com/realitygames/fantasy-league/internal/infrastructure/repository/cache"
	"github.com/realitygames/fantasy-league/internal/infrastructure/repository/memory"
	"github.com/realitygames/fantasy-league/internal/infrastructure/repository/postgres"
	"github.com/realitygames/fantasy-league/internal/interfaces/httpapi"
	basecache "github.com/realitygames/fantasy-league/internal/platform/cache"
	idgen "github.com/realitygames/fantasy-league/internal/platform/id"
	"github.com/realitygames/fantasy-league/internal/platform/logging"
	"github.com/realitygames/fantasy-league/internal/platform/resilience"
	"github.com/realitygames/fantasy-league/internal/usecase"
)

type repositories struct {
	leagues   league.Repository
	seasons   season.Repository
	castaways castaway.Repository
	drafts    draft.Repository
	rosters   roster.Repository
	picks     pick.Repository
	scoring   scoring.Repository
	users     user.Repository
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, db, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	idGen := idgen.NewRandomGenerator()

	var leagueService *usecase.LeagueService
	if cfg.StripeEnabled {
		checkout := stripeCheckout{client: stripe.NewClient(stripe.Config{
			BaseURL:    cfg.StripeBaseURL,
			SecretKey:  cfg.StripeSecretKey,
			Timeout:    cfg.StripeTimeout,
			SuccessURL: cfg.StripeSuccessURL,
			CancelURL:  cfg.StripeCancelURL,
		}, logger)}
		leagueService = usecase.NewLeagueService(repos.leagues, repos.seasons, repos.users, checkout, idGen)
	} else {
		leagueService = usecase.NewLeagueService(repos.leagues, repos.seasons, repos.users, nil, idGen)
	}

	draftService := usecase.NewDraftService(repos.leagues, repos.castaways, repos.drafts, repos.rosters)
	pickService := usecase.NewPickService(repos.leagues, repos.seasons, repos.castaways, repos.rosters, repos.picks, idGen)
	scoringService := usecase.NewScoringService(
		repos.leagues,
		repos.seasons,
		repos.castaways,
		repos.rosters,
		repos.picks,
		repos.scoring,
		idGen,
		cfg.StandingsRefreshInterval,
	)
	statsService := usecase.NewStatsService(repos.leagues, repos.seasons, repos.castaways, repos.rosters, repos.users, repos.scoring, scoringService)
	seasonService := usecase.NewSeasonService(repos.seasons, repos.castaways)
	profileService := usecase.NewProfileService(repos.users)
	recalcService := usecase.NewRecalcService(repos.leagues, repos.seasons, scoringService)

	var reminderService *usecase.ReminderService
	if cfg.SMSEnabled {
		smsClient := sms.NewClient(sms.Config{
			BaseURL:    cfg.SMSBaseURL,
			APIKey:     cfg.SMSAPIKey,
			SenderID:   cfg.SMSSenderID,
			Timeout:    cfg.SMSTimeout,
			MaxRetries: cfg.SMSMaxRetries,
			Circuit: resilience.CircuitBreakerConfig{
				Enabled:          cfg.SMSCircuitEnabled,
				FailureThreshold: cfg.SMSCircuitFailureCount,
				OpenTimeout:      cfg.SMSCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.SMSCircuitHalfOpenMaxReq,
			},
		}, logger)
		reminderService = usecase.NewReminderService(repos.leagues, repos.seasons, repos.picks, repos.users, smsClient, cfg.ReminderLead, logger)
	} else {
		reminderService = usecase.NewReminderService(repos.leagues, repos.seasons, repos.picks, repos.users, nil, cfg.ReminderLead, logger)
	}

	verifier := supabase.NewClient(
		&http.Client{Timeout: cfg.SupabaseTimeout},
		supabase.Config{
			BaseURL:      cfg.SupabaseURL,
			UserInfoPath: cfg.SupabaseUserInfoPath,
			APIKey:       cfg.SupabaseAPIKey,
			Circuit: resilience.CircuitBreakerConfig{
				Enabled:          cfg.SupabaseCircuitEnabled,
				FailureThreshold: cfg.SupabaseCircuitFailureCount,
				OpenTimeout:      cfg.SupabaseCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.SupabaseCircuitHalfOpenMaxReq,
			},
		},
		logger,
	)

	handler := httpapi.NewHandler(
		leagueService,
		draftService,
		pickService,
		seasonService,
		scoringService,
		statsService,
		profileService,
		reminderService,
		recalcService,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if db != nil {
		server.RegisterOnShutdown(func() { _ = db.Close() })
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// buildRepositories wires postgres-backed repositories when DB_URL is set and
// falls back to seeded in-memory ones for local development without a database.
func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	if cfg.DBURL == "" {
		logger.Warn("DB_URL is empty, using in-memory repositories with seed data")
		return repositories{
			leagues:   memory.NewLeagueRepository(nil),
			seasons:   memory.NewSeasonRepository(memory.SeedSeasons(), memory.SeedEpisodes()),
			castaways: memory.NewCastawayRepository(memory.SeedCastaways()),
			drafts:    memory.NewDraftRepository(),
			rosters:   memory.NewRosterRepository(),
			picks:     memory.NewPickRepository(),
			scoring:   memory.NewScoringRepository(memory.SeedScoringRules(), memory.SeedEpisodeSeasons()),
			users:     memory.NewUserRepository(nil),
		}, nil, nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}

	repos := repositories{
		leagues:   postgres.NewLeagueRepository(db),
		seasons:   postgres.NewSeasonRepository(db),
		castaways: postgres.NewCastawayRepository(db),
		drafts:    postgres.NewDraftRepository(db),
		rosters:   postgres.NewRosterRepository(db),
		picks:     postgres.NewPickRepository(db),
		scoring:   postgres.NewScoringRepository(db),
		users:     postgres.NewUserRepository(db),
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, store)
		repos.seasons = cacherepo.NewSeasonRepository(repos.seasons, store)
		repos.castaways = cacherepo.NewCastawayRepository(repos.castaways, store)
		repos.scoring = cacherepo.NewScoringRepository(repos.scoring, store)
	}

	return repos, db, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	return db, nil
}

// stripeCheckout adapts the Stripe client to the league service's checkout port.
type stripeCheckout struct {
	client *stripe.Client
}

func (s stripeCheckout) CreateCheckoutSession(ctx context.Context, leagueID, userID string, amountUSD int) (usecase.CheckoutSessionRef, error) {
	session, err := s.client.CreateCheckoutSession(ctx, leagueID, userID, amountUSD)
	if err != nil {
		return usecase.CheckoutSessionRef{}, err
	}
	return usecase.CheckoutSessionRef{ID: session.ID, URL: session.URL}, nil
}
