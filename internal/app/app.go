package app

import (
	"fmt"
	"net/http"

	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/courtside/padel-league/internal/config"
	"github.com/courtside/padel-league/internal/domain/invite"
	"github.com/courtside/padel-league/internal/domain/match"
	"github.com/courtside/padel-league/internal/domain/pair"
	"github.com/courtside/padel-league/internal/domain/user"
	"github.com/courtside/padel-league/internal/infrastructure/repository/memory"
	"github.com/courtside/padel-league/internal/infrastructure/repository/postgres"
	"github.com/courtside/padel-league/internal/interfaces/httpapi"
	idgen "github.com/courtside/padel-league/internal/platform/id"
	"github.com/courtside/padel-league/internal/platform/logging"
	"github.com/courtside/padel-league/internal/usecase"
)

type repositories struct {
	users   user.Repository
	pairs   pair.Repository
	invites invite.Repository
	matches match.Repository
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	repos, err := buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	ids := idgen.NewRandomGenerator()

	// One lock across all mutating services; see usecase.SnapshotLock.
	lock := usecase.NewSnapshotLock()

	userSvc := usecase.NewUserService(repos.users, ids, cfg.FacilityID, lock)
	inviteSvc := usecase.NewInviteService(repos.users, repos.pairs, repos.invites, ids, lock)
	pairingSvc := usecase.NewPairingService(repos.users, repos.pairs, ids, logger, lock)
	fixtureSvc := usecase.NewFixtureService(repos.users, repos.pairs, repos.matches, cfg.Season(), cfg.Facility(), ids, logger, lock)
	matchSvc := usecase.NewMatchService(repos.users, repos.pairs, repos.matches, lock)
	integritySvc := usecase.NewIntegrityService(repos.users, repos.pairs, repos.matches, logger)

	handler := httpapi.NewHandler(userSvc, inviteSvc, pairingSvc, fixtureSvc, matchSvc, integritySvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := otelsqlx.Connect("postgres", cfg.DBURL,
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(cfg.ServiceName),
		)
		if err != nil {
			return repositories{}, fmt.Errorf("connect postgres: %w", err)
		}
		return repositories{
			users:   postgres.NewUserRepository(db),
			pairs:   postgres.NewPairRepository(db),
			invites: postgres.NewInviteRepository(db),
			matches: postgres.NewMatchRepository(db),
		}, nil
	default:
		return repositories{
			users:   memory.NewUserRepository(memory.SeedUsers()),
			pairs:   memory.NewPairRepository(nil),
			invites: memory.NewInviteRepository(),
			matches: memory.NewMatchRepository(),
		}, nil
	}
}
