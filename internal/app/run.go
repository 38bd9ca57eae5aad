package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkrawiec/netplanner/internal/auth"
	"github.com/mkrawiec/netplanner/internal/config"
	"github.com/mkrawiec/netplanner/internal/domain"
	apihttp "github.com/mkrawiec/netplanner/internal/http"
	"github.com/mkrawiec/netplanner/internal/store"
)

type Config struct {
	Port         string
	RegistryPath string
	DSN          string
	SettingsPath string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	AuthEnabled bool
	Issuer      string
	Audience    string
	JWKSURL     string
}

// LoadConfig reads the server configuration from the environment. The
// registry lives in a local file unless DB_CONN points at postgres.
func LoadConfig() Config {
	cfg := Config{
		Port:         os.Getenv("PORT"),
		RegistryPath: os.Getenv("REGISTRY_PATH"),
		DSN:          os.Getenv("DB_CONN"),
		SettingsPath: os.Getenv("PLANNER_SETTINGS"),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		Issuer:       os.Getenv("AUTH_ISSUER"),
		Audience:     os.Getenv("AUTH_AUDIENCE"),
		JWKSURL:      os.Getenv("AUTH_JWKS_URL"),
	}
	cfg.AuthEnabled, _ = strconv.ParseBool(os.Getenv("AUTH_ENABLED"))

	if cfg.Port == "" {
		cfg.Port = "4040"
	}
	if cfg.RegistryPath == "" {
		cfg.RegistryPath = "registry.json"
	}
	return cfg
}

func newAuthenticator(ctx context.Context, cfg Config) (auth.Authenticator, error) {
	return auth.NewKeycloakAuthenticator(ctx, auth.Config{
		Enabled:  cfg.AuthEnabled,
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		JWKSURL:  cfg.JWKSURL,
	})
}

func newStore(ctx context.Context, cfg Config, logger *slog.Logger) (domain.ReservationStore, func(), error) {
	if cfg.DSN == "" {
		logger.Info("using file registry", "path", cfg.RegistryPath)
		return store.NewFileStore(cfg.RegistryPath), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("using postgres registry")
	return store.NewPostgresStore(pool), pool.Close, nil
}

// Serve wires the store, planner service and API together and serves on the
// given listener until ctx is cancelled. Wiring errors surface before the
// server starts accepting requests.
func Serve(ctx context.Context, cfg Config, listener net.Listener) error {
	logger := slog.Default()

	settings, err := config.LoadFile(cfg.SettingsPath)
	if err != nil {
		return fmt.Errorf("load planner settings: %w", err)
	}

	registry, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	authenticator, err := newAuthenticator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("configure authenticator: %w", err)
	}

	service := domain.NewLoggingPlannerService(logger, domain.NewPlannerService(registry, settings.Planner()))
	api := apihttp.NewAPI(logger, registry, service, authenticator)

	server := &http.Server{
		Handler:      api.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("serving api", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("serve error", "err", err.Error())
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func Run(ctx context.Context, cfg Config) error {
	listener, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}
	return Serve(ctx, cfg, listener)
}
