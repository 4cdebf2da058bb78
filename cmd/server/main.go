package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"kitchen/internal/auth"
	"kitchen/internal/config"
	"kitchen/internal/db"
	"kitchen/internal/db/mock"
	applog "kitchen/internal/log"
	"kitchen/internal/server"
	"kitchen/internal/store"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	bootstrapFunc       = bootstrap
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}
	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	var database *gorm.DB
	if cfg.Database.UseMock {
		applog.Info(ctx, "using mock database")
		database, err = newMockDatabaseFunc(ctx)
	} else {
		applog.Debug(ctx, "connecting to database")
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	if err := bootstrapFunc(ctx, database, cfg.Auth.Admin); err != nil {
		applog.Error(ctx, "failed to bootstrap database", "error", err)
		return 1
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.Token.Secret, cfg.Auth.Token.TTL)
	if tokens == nil {
		applog.Info(ctx, "api tokens disabled: JWT_SECRET is not set")
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
			RedisURL:     cfg.Auth.Session.RedisURL,
		},
		Store:  store.New(database),
		Tokens: tokens,
		Metrics: server.MetricsConfig{
			Enabled: cfg.Metrics.Enabled,
			Path:    cfg.Metrics.Path,
		},
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	shutdown, stop := subscribeShutdownSig()
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-shutdown:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "shutting down http server", "reason", ctx.Err())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server encountered an error", "error", err)
		return 1
	}
	return 0
}

// bootstrap runs the startup steps that must follow migrations: the three
// roles exist and the configured superuser is present.
func bootstrap(ctx context.Context, database *gorm.DB, admin config.AdminConfig) error {
	if err := auth.EnsureRoles(ctx, database); err != nil {
		return err
	}
	_, err := auth.SeedSuperuser(ctx, database, admin.Username, admin.Password)
	return err
}
