package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"
)

// runConfig holds parsed configuration for the daemon.
type runConfig struct {
	Addr      string
	JWTSecret string
	SeedFile  string
	Debug     bool

	PushGatewayURL     string
	PushAuthToken      string
	PushTimeoutSeconds int
	PushRPS            float64

	Workers       int
	QueueSize     int
	LookupTimeout time.Duration
	SendTimeout   time.Duration
}

// parseConfig reads flags from args. Every flag default comes from its BARTER_*
// variable looked up through getenv, so a .env file loaded beforehand also applies.
func parseConfig(args []string, getenv func(string) string) (runConfig, error) {
	var envErrs []error
	str := func(key, def string) string {
		return envOr(getenv, key, def, func(raw string) (string, error) { return raw, nil }, &envErrs)
	}
	integer := func(key string, def int) int {
		return envOr(getenv, key, def, strconv.Atoi, &envErrs)
	}
	float := func(key string, def float64) float64 {
		return envOr(getenv, key, def, func(raw string) (float64, error) { return strconv.ParseFloat(raw, 64) }, &envErrs)
	}
	duration := func(key string, def time.Duration) time.Duration {
		return envOr(getenv, key, def, time.ParseDuration, &envErrs)
	}
	boolean := func(key string, def bool) bool {
		return envOr(getenv, key, def, strconv.ParseBool, &envErrs)
	}

	cfg := runConfig{}
	fs := flag.NewFlagSet("barterd", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", str("BARTER_ADDR", ":8080"), "Address to listen on")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", str("BARTER_JWT_SECRET", ""), "HS256 secret used to validate API bearer tokens")
	fs.StringVar(&cfg.SeedFile, "seed", str("BARTER_SEED_FILE", ""), "Optional YAML/JSON snapshot to load into the store at startup")
	fs.BoolVar(&cfg.Debug, "debug", boolean("BARTER_DEBUG", false), "Enable debug logging")
	fs.StringVar(&cfg.PushGatewayURL, "push-gateway-url", str("BARTER_PUSH_GATEWAY_URL", ""), "Push gateway endpoint; empty logs notifications instead of sending them")
	fs.StringVar(&cfg.PushAuthToken, "push-auth-token", str("BARTER_PUSH_AUTH_TOKEN", ""), "Bearer token for the push gateway")
	fs.IntVar(&cfg.PushTimeoutSeconds, "push-timeout", integer("BARTER_PUSH_TIMEOUT", 10), "Push gateway HTTP timeout in seconds")
	fs.Float64Var(&cfg.PushRPS, "push-rps", float("BARTER_PUSH_RPS", 20), "Maximum push gateway requests per second")
	fs.IntVar(&cfg.Workers, "workers", integer("BARTER_WORKERS", 4), "Notification dispatch workers")
	fs.IntVar(&cfg.QueueSize, "queue-size", integer("BARTER_QUEUE_SIZE", 1000), "Pending notification events before new ones are dropped")
	fs.DurationVar(&cfg.LookupTimeout, "lookup-timeout", duration("BARTER_LOOKUP_TIMEOUT", 5*time.Second), "Timeout for each conversation or token lookup")
	fs.DurationVar(&cfg.SendTimeout, "send-timeout", duration("BARTER_SEND_TIMEOUT", 15*time.Second), "Timeout for each multicast send")
	if err := errors.Join(envErrs...); err != nil {
		return runConfig{}, err
	}
	if err := fs.Parse(args); err != nil {
		return runConfig{}, err
	}

	if cfg.JWTSecret == "" {
		return runConfig{}, fmt.Errorf("a JWT secret is required (-jwt-secret or BARTER_JWT_SECRET)")
	}
	if cfg.Workers < 1 {
		return runConfig{}, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	return cfg, nil
}

// envOr parses getenv(key) with parse, or returns def when the variable is
// unset. Parse failures are appended to errs and also yield def.
func envOr[T any](getenv func(string) string, key string, def T, parse func(string) (T, error), errs *[]error) T {
	raw := getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return v
}
