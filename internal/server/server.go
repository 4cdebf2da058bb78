package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus"

	"kitchen/internal/auth"
	"kitchen/internal/handlers"
	applog "kitchen/internal/log"
	"kitchen/internal/session"
	"kitchen/internal/store"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr    string
	Session SessionConfig
	Store   *store.Store
	// Tokens signs API bearer tokens; nil disables the token endpoint.
	Tokens  *auth.TokenIssuer
	Metrics MetricsConfig
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
	// RedisURL selects the redis session store; empty keeps sessions in memory.
	RedisURL string
}

// MetricsConfig toggles the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Server wraps an http.Server and exposes helpers for bootstrapping a
// production-ready web service.
type Server struct {
	config     Config
	httpServer *http.Server
	closers    []io.Closer
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	ctx := context.Background()
	applog.Debug(ctx, "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
	)

	sessionCfg := cfg.Session
	if sessionCfg.Lifetime <= 0 {
		applog.Debug(ctx, "session lifetime not provided, using default")
		sessionCfg.Lifetime = 12 * time.Hour
	}
	if strings.TrimSpace(sessionCfg.CookieName) == "" {
		applog.Debug(ctx, "session cookie name not provided, using default")
		sessionCfg.CookieName = "kitchen_session"
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = sessionCfg.Lifetime
	sessionManager.Cookie.Name = sessionCfg.CookieName
	sessionManager.Cookie.Domain = sessionCfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = sessionCfg.CookieSecure

	srv := &Server{config: cfg}
	if sessionCfg.RedisURL != "" {
		redisStore, err := session.Dial(ctx, sessionCfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		sessionManager.Store = redisStore
		srv.closers = append(srv.closers, redisStore)
		applog.Info(ctx, "using redis session store")
	}

	applog.Debug(ctx, "session manager configured",
		"cookieName", sessionCfg.CookieName,
		"cookieDomain", sessionCfg.CookieDomain,
		"cookieSecure", sessionCfg.CookieSecure,
	)

	handlers.Configure(sessionManager, cfg.Store, cfg.Tokens)

	applog.Debug(ctx, "handler dependencies configured", "apiTokens", cfg.Tokens != nil)

	var metrics *Metrics
	if cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		cfg.Metrics.Path = path
		metrics = NewMetrics(prometheus.NewRegistry(), poolOf(cfg.Store))
	}

	handler := requestID(sessionManager.LoadAndSave(newRouter(metrics, cfg.Metrics.Path)))

	applog.Debug(ctx, "http handler chain prepared", "metrics", metrics != nil)

	srv.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout and releases the
// session store.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	errs := []error{s.httpServer.Shutdown(ctx)}
	for _, closer := range s.closers {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
