package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_DEFAULT_LIMIT", "RATE_LIMIT_DEFAULT_WINDOW",
		"RATE_LIMIT_PARSE_LIMIT", "RATE_LIMIT_PARSE_WINDOW", "RATE_LIMIT_PARSE_BURST",
		"RATE_LIMIT_CLEANUP_INTERVAL", "RATE_LIMIT_WHITELIST", "RATE_LIMIT_BLACKLIST",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 600, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
	assert.Empty(t, cfg.Whitelist)
	assert.Equal(t, DefaultEndpointConfigs(), cfg.EndpointConfigs)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "50")
	t.Setenv("RATE_LIMIT_PARSE_LIMIT", "5")
	t.Setenv("RATE_LIMIT_PARSE_WINDOW", "1h")
	t.Setenv("RATE_LIMIT_PARSE_BURST", "not-a-number")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2,,")
	t.Setenv("RATE_LIMIT_BLACKLIST", "192.168.1.1")

	cfg := LoadConfig()

	assert.Equal(t, 50, cfg.DefaultLimit)
	require.Len(t, cfg.EndpointConfigs, 1)
	assert.Equal(t, EndpointConfig{Path: "/parse", Method: "POST", Limit: 5, Window: time.Hour, Burst: 10}, cfg.EndpointConfigs[0])
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.True(t, cfg.Blacklist["192.168.1.1"])
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.EndpointConfigs)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/parse", Method: "POST", Limit: 60},
		{Path: "/parse/", Method: "POST", Limit: 30},
		{Path: "/parse/batch/", Method: "POST", Limit: 5},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{"exact", "/parse", "POST", 60, false},
		{"prefix", "/parse/en-US", "POST", 30, false},
		{"longest prefix", "/parse/batch/1", "POST", 5, false},
		{"method mismatch", "/parse", "GET", 0, true},
		{"no match", "/locales", "GET", 0, true},
		{"health unlimited", "/health", "GET", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}
