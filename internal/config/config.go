package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/hydromet/internal/hydromet"
)

// DefaultSourceURL is the station page of Pozhezhevska (WMO 33646).
const DefaultSourceURL = "http://gmc.uzhgorod.ua/metdata.php?StNo=33646"

type AppConfig struct {
	AppEnv   string     `validate:"oneof=dev prod"`
	LogLevel slog.Level `validate:"-"`

	SourceURL     string `validate:"required,url"`
	SourceCharset string // empty = detect from the response
	DataDir       string `validate:"required"`
	DateSeparator string `validate:"oneof=. -"`

	// SkipIfExists reuses a file already written for the current day.
	SkipIfExists  bool
	// SkipMalformed drops bad records with a warning instead of failing the run.
	SkipMalformed bool
	TempEpsilon   float64 `validate:"gte=0"`
	ChartLabel    string  `validate:"oneof=time-day date-time"`

	HTTPTimeout  time.Duration `validate:"gt=0"`
	FetchRetries int           `validate:"gte=0,lte=10"`

	// RefreshInterval controls how often serve mode reruns the pipeline.
	RefreshInterval time.Duration `validate:"gte=1m"`

	// In-memory report retention.
	StoreMaxHistory int           // max number of reports (0 = unlimited)
	StoreMaxAge     time.Duration // max age of reports (0 = unlimited)

	Port string `validate:"required,numeric"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
// Callers load any .env file beforehand.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.SourceURL = getenvDefault("HYDROMET_URL", DefaultSourceURL)
	cfg.SourceCharset = strings.TrimSpace(os.Getenv("HYDROMET_CHARSET"))
	cfg.DataDir = getenvDefault("DATA_DIR", "csv")
	cfg.DateSeparator = getenvDefault("DATE_SEPARATOR", ".")
	cfg.ChartLabel = getenvDefault("CHART_LABEL", string(hydromet.LabelTimeDay))

	if cfg.SkipIfExists, err = getenvBool("SKIP_IF_EXISTS", false); err != nil {
		return nil, err
	}
	if cfg.SkipMalformed, err = getenvBool("SKIP_MALFORMED", false); err != nil {
		return nil, err
	}

	eps := getenvDefault("TEMP_EPSILON", "0")
	if cfg.TempEpsilon, err = strconv.ParseFloat(eps, 64); err != nil {
		return nil, fmt.Errorf("invalid TEMP_EPSILON: %w", err)
	}

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	cfg.FetchRetries = getenvInt("FETCH_RETRIES", 0)

	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "1h"); err != nil {
		return nil, err
	}
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 24) // a day of hourly refreshes
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "48h"); err != nil {
		return nil, err
	}
	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// DateFormat returns the date format selected by DATE_SEPARATOR.
func (c *AppConfig) DateFormat() hydromet.DateFormat {
	return hydromet.DateFormat{Separator: c.DateSeparator}
}

// PipelineOptions maps the configuration onto hydromet.Options.
func (c *AppConfig) PipelineOptions() hydromet.Options {
	return hydromet.Options{
		Source:       c.SourceURL,
		Format:       c.DateFormat(),
		SkipIfExists: c.SkipIfExists,
		Parse:        hydromet.ParseOptions{SkipMalformed: c.SkipMalformed},
		Epsilon:      c.TempEpsilon,
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
