// Package main is the entry point for the library catalog API server.
// It wires together configuration, the in-memory catalog, and the HTTP router.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/aoideee/library-catalog/internal/catalog"
	"github.com/aoideee/library-catalog/internal/data"
)

// appVersion is the current version of the API, shown in logs and the healthcheck.
const appVersion = "1.0.0"

// serverConfig holds all the values that can be tweaked at startup via
// command-line flags. Every flag defaults to a CATALOG_* environment variable.
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on (default 4000)
	environment string // Runtime environment: development, staging, or production
	logFormat   string // text or json
	limiter     struct {
		rps     float64 // Tokens added to each client's bucket per second
		burst   int     // Bucket capacity
		enabled bool
	}
}

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config  serverConfig     // Server configuration loaded from flags
	logger  *slog.Logger     // Structured logger that writes to stdout
	models  data.Models      // In-memory storage
	catalog *catalog.Service // Business rules over models.Books
}

func main() {
	// A missing .env file is fine; the environment and flags still apply.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}

	settings, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(os.Stdout, settings.logFormat)

	models := data.NewModels()
	logger.Info("catalog seeded", "books", models.Books.Len())

	appInstance := &applicationDependencies{
		config:  settings,
		logger:  logger,
		models:  models,
		catalog: catalog.New(models.Books, logger),
	}

	if err := appInstance.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// loadConfig parses args into a serverConfig. Defaults come from getenv so a
// .env file or the process environment can configure the server without flags.
func loadConfig(args []string, getenv func(string) string) (serverConfig, error) {
	var settings serverConfig

	port, err := envInt(getenv, "CATALOG_PORT", 4000)
	if err != nil {
		return settings, err
	}
	rps, err := envFloat(getenv, "CATALOG_LIMITER_RPS", 2)
	if err != nil {
		return settings, err
	}
	burst, err := envInt(getenv, "CATALOG_LIMITER_BURST", 4)
	if err != nil {
		return settings, err
	}
	limiterEnabled, err := envBool(getenv, "CATALOG_LIMITER_ENABLED", true)
	if err != nil {
		return settings, err
	}

	flags := flag.NewFlagSet("api", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.IntVar(&settings.port, "port", port, "Server port")
	flags.StringVar(&settings.environment, "env", envString(getenv, "CATALOG_ENV", "development"), "Environment(development|staging|production)")
	flags.StringVar(&settings.logFormat, "log-format", envString(getenv, "CATALOG_LOG_FORMAT", "text"), "Log format(text|json)")
	flags.Float64Var(&settings.limiter.rps, "limiter-rps", rps, "Rate limiter maximum requests per second")
	flags.IntVar(&settings.limiter.burst, "limiter-burst", burst, "Rate limiter maximum burst")
	flags.BoolVar(&settings.limiter.enabled, "limiter-enabled", limiterEnabled, "Enable rate limiter")

	if err := flags.Parse(args); err != nil {
		return settings, err
	}

	switch settings.logFormat {
	case "text", "json":
	default:
		return settings, fmt.Errorf("invalid log format %q", settings.logFormat)
	}
	return settings, nil
}

// newLogger returns a structured logger writing to w in the given format.
func newLogger(w io.Writer, format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, nil))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

func envString(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(getenv func(string) string, key string, fallback int) (int, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return i, nil
}

func envFloat(getenv func(string) string, key string, fallback float64) (float64, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func envBool(getenv func(string) string, key string, fallback bool) (bool, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
