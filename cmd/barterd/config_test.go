package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig(nil, envMap(map[string]string{"BARTER_JWT_SECRET": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Empty(t, cfg.PushGatewayURL)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 1000, cfg.QueueSize)
	assert.Equal(t, 5*time.Second, cfg.LookupTimeout)
	assert.Equal(t, 15*time.Second, cfg.SendTimeout)
	assert.False(t, cfg.Debug)
}

func TestParseConfig_FlagsOverrideEnv(t *testing.T) {
	env := envMap(map[string]string{
		"BARTER_JWT_SECRET":       "from-env",
		"BARTER_ADDR":             ":9000",
		"BARTER_PUSH_GATEWAY_URL": "https://push.example.com/send",
		"BARTER_DEBUG":            "true",
		"BARTER_WORKERS":          "8",
	})
	cfg, err := parseConfig([]string{"-addr", ":7000", "-jwt-secret", "from-flag", "-send-timeout", "3s"}, env)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "from-flag", cfg.JWTSecret)
	assert.Equal(t, "https://push.example.com/send", cfg.PushGatewayURL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 3*time.Second, cfg.SendTimeout)
}

func TestParseConfig_EveryFlagHasEnvDefault(t *testing.T) {
	env := envMap(map[string]string{
		"BARTER_JWT_SECRET":      "s3cret",
		"BARTER_SEED_FILE":       "seed.yaml",
		"BARTER_PUSH_AUTH_TOKEN": "push-token",
		"BARTER_PUSH_TIMEOUT":    "3",
		"BARTER_PUSH_RPS":        "2.5",
		"BARTER_QUEUE_SIZE":      "50",
		"BARTER_LOOKUP_TIMEOUT":  "750ms",
		"BARTER_SEND_TIMEOUT":    "2s",
	})
	cfg, err := parseConfig(nil, env)
	require.NoError(t, err)

	assert.Equal(t, "seed.yaml", cfg.SeedFile)
	assert.Equal(t, "push-token", cfg.PushAuthToken)
	assert.Equal(t, 3, cfg.PushTimeoutSeconds)
	assert.Equal(t, 2.5, cfg.PushRPS)
	assert.Equal(t, 50, cfg.QueueSize)
	assert.Equal(t, 750*time.Millisecond, cfg.LookupTimeout)
	assert.Equal(t, 2*time.Second, cfg.SendTimeout)

	cfg, err = parseConfig([]string{"-queue-size", "7", "-lookup-timeout", "1s"}, env)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.QueueSize)
	assert.Equal(t, time.Second, cfg.LookupTimeout)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "bad worker env", env: map[string]string{"BARTER_JWT_SECRET": "x", "BARTER_WORKERS": "many"}},
		{name: "bad duration env", env: map[string]string{"BARTER_JWT_SECRET": "x", "BARTER_SEND_TIMEOUT": "soon"}},
		{name: "bad rps env", env: map[string]string{"BARTER_JWT_SECRET": "x", "BARTER_PUSH_RPS": "fast"}},
		{name: "bad debug env", env: map[string]string{"BARTER_JWT_SECRET": "x", "BARTER_DEBUG": "sure"}},
		{name: "zero workers", args: []string{"-workers", "0"}, env: map[string]string{"BARTER_JWT_SECRET": "x"}},
		{name: "unknown flag", args: []string{"-nope"}, env: map[string]string{"BARTER_JWT_SECRET": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(tt.args, envMap(tt.env))
			assert.Error(t, err)
		})
	}
}
