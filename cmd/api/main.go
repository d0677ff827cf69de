// @title Pet Health Record API
// @version 1.0
// @description Dashboard de salud de mascotas: actividad, calendario, alertas, métricas, prioridades e insights.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authoidc "pet-health-record/internal/adapters/auth/oidc"
	mem "pet-health-record/internal/adapters/storage/memory"
	pg "pet-health-record/internal/adapters/storage/postgres"
	"pet-health-record/internal/adapters/storage/rest"
	"pet-health-record/internal/config"
	"pet-health-record/internal/domain/records"
	"pet-health-record/internal/middleware"
	"pet-health-record/internal/platform/logger"
	"pet-health-record/internal/ports/auth"
	"pet-health-record/internal/router"
)

// devUserID es el usuario sembrado cuando no hay backend configurado.
const devUserID = "dev-user"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("store init failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
	defer closeStore()

	var verifier auth.AuthVerifier // nil => modo dev (X-Debug-User-ID)
	if cfg.OIDC.IssuerURL != "" {
		v, err := authoidc.NewVerifier(ctx, authoidc.Config{
			IssuerURL: cfg.OIDC.IssuerURL,
			ClientID:  cfg.OIDC.ClientID,
		})
		if err != nil {
			log.Error("oidc init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		verifier = v
	} else {
		log.Warn("no OIDC_ISSUER_URL configured, accepting X-Debug-User-ID (dev mode)", nil)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, time.Minute)
	defer limiter.Stop()

	r := router.NewRouter(router.Options{
		AuthVerifier:       verifier,
		Store:              store,
		Logger:             log,
		MetricsEnabled:     cfg.PrometheusEnabled,
		RateLimit:          limiter,
		FetchTimeout:       cfg.FetchTimeout,
		AlertDaysThreshold: cfg.AlertDaysThreshold,
		Now:                cfg.Now,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		// Un refresh puede tardar hasta FetchTimeout.
		WriteTimeout: cfg.FetchTimeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.ListenAddr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			log.Error("server error", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", map[string]any{"err": err.Error()})
	}
	log.Info("server stopped", nil)
}

// openStore elige backend: BaaS REST > Postgres > memoria con datos demo.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (records.Store, func(), error) {
	noop := func() {}

	switch {
	case cfg.BaaS.URL != "":
		s, err := rest.NewStore(rest.Config{
			BaseURL: cfg.BaaS.URL,
			APIKey:  cfg.BaaS.APIKey,
			Timeout: cfg.FetchTimeout,
		})
		if err != nil {
			return nil, noop, err
		}
		log.Info("using rest record store", map[string]any{"url": cfg.BaaS.URL})
		return s, noop, nil

	case cfg.DB.DSN != "":
		db, err := pg.Open(ctx, cfg.DB.DSN, pg.PoolOptions{})
		if err != nil {
			return nil, noop, err
		}
		log.Info("using postgres record store", nil)
		return pg.NewRecordsStore(db), closeDB(db, log), nil

	default:
		s := mem.NewStore()
		if err := mem.SeedDemo(s, devUserID, cfg.Now()); err != nil {
			return nil, noop, err
		}
		log.Warn("no BAAS_URL or DB_DSN configured, using in-memory demo data", map[string]any{"user_id": devUserID})
		return s, noop, nil
	}
}

func closeDB(db *sql.DB, log logger.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Warn("db close failed", map[string]any{"err": err.Error()})
		}
	}
}
