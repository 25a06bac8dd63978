package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/myrjola/checkpoint/internal/envstruct"
	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/game"
	"github.com/myrjola/checkpoint/internal/generator"
	"github.com/myrjola/checkpoint/internal/logging"
	"github.com/myrjola/checkpoint/internal/metrics"
	"github.com/myrjola/checkpoint/internal/pprofserver"
	"github.com/myrjola/checkpoint/internal/random"
	"github.com/myrjola/checkpoint/internal/redisstore"
	"github.com/myrjola/checkpoint/internal/repositories"
	"github.com/myrjola/checkpoint/internal/sqlite"
)

const sessionCleanupInterval = 24 * time.Hour

type healthChecker interface {
	Healthy(ctx context.Context) error
}

type application struct {
	logger         *slog.Logger
	game           *game.Service
	sessionManager *scs.SessionManager
	metrics        *metrics.Metrics
	registry       *prometheus.Registry
	store          healthChecker
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"CHECKPOINT_ADDR" envDefault:"localhost:4000"`

	// SqliteURL is the path to the SQLite database. ":memory:" gives a throwaway database.
	SqliteURL string `env:"CHECKPOINT_SQLITE_URL" envDefault:"./checkpoint.sqlite"`

	// RedisURL moves the game sessions and the leaderboard to Redis when set. Browser sessions stay in SQLite.
	RedisURL string `env:"CHECKPOINT_REDIS_URL" envDefault:""`

	SessionLifetime time.Duration `env:"CHECKPOINT_SESSION_LIFETIME" envDefault:"12h"`

	// PprofAddr enables the pprof server. Keep it on a loopback address.
	PprofAddr string `env:"CHECKPOINT_PPROF_ADDR" envDefault:""`

	ViolationChanceEasy   float64 `env:"CHECKPOINT_VIOLATION_CHANCE_EASY" envDefault:"0.6"`
	ViolationChanceMedium float64 `env:"CHECKPOINT_VIOLATION_CHANCE_MEDIUM" envDefault:"0.5"`
	ViolationChanceHard   float64 `env:"CHECKPOINT_VIOLATION_CHANCE_HARD" envDefault:"0.4"`

	// GameLength ends the game after this many decisions. Zero means endless play.
	GameLength int `env:"CHECKPOINT_GAME_LENGTH" envDefault:"0"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		err error
		cfg config
		dbs *sqlite.Database
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	if cfg.GameLength < 0 {
		return errors.New("game length must not be negative", slog.Int("game_length", cfg.GameLength))
	}

	if dbs, err = sqlite.NewDatabase(ctx, cfg.SqliteURL, logger); err != nil {
		return errors.Wrap(err, "open sqlite database", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := dbs.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database",
				errors.SlogError(errors.Wrap(closeErr, "close database")))
		}
	}()

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite.DB, sessionCleanupInterval)
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Secure = true

	var (
		store        game.Store
		storeChecker healthChecker
	)
	if cfg.RedisURL != "" {
		client, connectErr := redisstore.Connect(ctx, cfg.RedisURL)
		if connectErr != nil {
			return errors.Wrap(connectErr, "connect redis")
		}
		defer func() {
			_ = client.Close()
		}()
		redisStore := redisstore.New(client, cfg.SessionLifetime, logger)
		store, storeChecker = redisStore, redisStore
		logger.LogAttrs(ctx, slog.LevelInfo, "storing game sessions in redis")
	} else {
		repo := repositories.NewSessionRepository(dbs, logger)
		store, storeChecker = repo, repo
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	gen := generator.New(random.NewCryptoSource(), generator.WithPolicy(generator.Policy{
		Easy:   cfg.ViolationChanceEasy,
		Medium: cfg.ViolationChanceMedium,
		Hard:   cfg.ViolationChanceHard,
	}))

	app := application{
		logger:         logger,
		game:           game.NewService(store, gen, logger, game.WithObserver(m), game.WithGameLength(cfg.GameLength)),
		sessionManager: sessionManager,
		metrics:        m,
		registry:       registry,
		store:          storeChecker,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.configureAndStartServer(ctx, cfg.Addr)
	})
	g.Go(func() error {
		return dbs.RunOptimizer(ctx, time.Hour)
	})
	if cfg.PprofAddr != "" {
		g.Go(func() error {
			return pprofserver.ListenAndServe(ctx, cfg.PprofAddr, logger)
		})
	}
	if err = g.Wait(); err != nil {
		return errors.Wrap(err, "run services")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failed to load .env", errors.SlogError(err))
		os.Exit(1) //nolint:gocritic // stop is a no-op at this point
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
