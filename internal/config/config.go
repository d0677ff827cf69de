package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // APP_TIMEZONE sin zoneinfo en la imagen

	"pet-health-record/internal/platform/logger"
)

type Config struct {
	ListenAddr string
	AppName    string

	// Backend de registros: BaaS.URL > DB.DSN > memoria (dev).
	BaaS struct {
		URL    string
		APIKey string
	}
	DB struct {
		DSN string
	}

	// OIDC.IssuerURL vacío => modo dev (header X-Debug-User-ID).
	OIDC struct {
		IssuerURL string
		ClientID  string
	}

	Log struct {
		Level  logger.Level
		Format logger.Format
	}

	PrometheusEnabled bool

	RateLimit struct {
		RPS   float64
		Burst int
	}

	FetchTimeout       time.Duration
	AlertDaysThreshold int
	Location           *time.Location
}

// Load lee la configuración desde env. Valores inválidos => error descriptivo.
func Load() (*Config, error) {
	cfg := &Config{}
	var errs []error

	cfg.ListenAddr = getenvDefault("APP_LISTEN_ADDR", "")
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":" + getenvDefault("PORT", "8080")
	}
	cfg.AppName = getenvDefault("APP_NAME", "pet-health-record")

	cfg.BaaS.URL = strings.TrimSpace(os.Getenv("BAAS_URL"))
	cfg.BaaS.APIKey = strings.TrimSpace(os.Getenv("BAAS_API_KEY"))
	cfg.DB.DSN = strings.TrimSpace(os.Getenv("DB_DSN"))
	if cfg.BaaS.URL != "" && cfg.BaaS.APIKey == "" {
		errs = append(errs, errors.New("BAAS_API_KEY is required when BAAS_URL is set"))
	}

	cfg.OIDC.IssuerURL = strings.TrimSpace(os.Getenv("OIDC_ISSUER_URL"))
	cfg.OIDC.ClientID = strings.TrimSpace(os.Getenv("OIDC_CLIENT_ID"))

	cfg.Log.Level = logger.ParseLevel(os.Getenv("LOG_LEVEL"))
	cfg.Log.Format = logger.ParseFormat(os.Getenv("LOG_FORMAT"))

	cfg.PrometheusEnabled = getenvBool("PROMETHEUS_ENABLED", true)

	var err error
	if cfg.RateLimit.RPS, err = getenvFloat("RATE_LIMIT_RPS", 10); err != nil {
		errs = append(errs, err)
	} else if cfg.RateLimit.RPS < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be >= 0 (got %v)", cfg.RateLimit.RPS))
	}
	if cfg.RateLimit.Burst, err = getenvInt("RATE_LIMIT_BURST", 20); err != nil {
		errs = append(errs, err)
	} else if cfg.RateLimit.Burst < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be >= 1 (got %d)", cfg.RateLimit.Burst))
	}

	if cfg.FetchTimeout, err = getenvDuration("FETCH_TIMEOUT", 10*time.Second); err != nil {
		errs = append(errs, err)
	} else if cfg.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("FETCH_TIMEOUT must be positive (got %s)", cfg.FetchTimeout))
	}

	if cfg.AlertDaysThreshold, err = getenvInt("ALERT_DAYS_THRESHOLD", 30); err != nil {
		errs = append(errs, err)
	} else if cfg.AlertDaysThreshold < 1 {
		errs = append(errs, fmt.Errorf("ALERT_DAYS_THRESHOLD must be >= 1 (got %d)", cfg.AlertDaysThreshold))
	}

	tz := getenvDefault("APP_TIMEZONE", "UTC")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE %q: %w", tz, err))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Now devuelve el reloj en la zona configurada.
func (c *Config) Now() time.Time {
	if c == nil || c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer (got %q)", key, v)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number (got %q)", key, v)
	}
	return f, nil
}

// getenvDuration acepta "10s", "1m30s" o segundos a secas ("10").
func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 10s (got %q)", key, v)
	}
	return d, nil
}
