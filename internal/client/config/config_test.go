package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, "http://127.0.0.1:8080", c.ContentEndpointAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 1500*time.Millisecond, c.ThinkingDelayBase)
	assert.Equal(t, 3000*time.Millisecond, c.ThinkingDelayJitter)
	assert.NotEmpty(t, c.DataDir)
	assert.NoError(t, c.Validate())
}

func TestPaths(t *testing.T) {
	c := &Config{DataDir: "/data"}
	assert.Equal(t, filepath.Join("/data", "client.log"), c.LogPath())
	assert.Equal(t, filepath.Join("/data", "hopekeeper.db"), c.DatabasePath())

	c.LogFile = "/var/log/hk.log"
	assert.Equal(t, "/var/log/hk.log", c.LogPath())
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "127.0.0.1:9090", "-w", "http://x", "-k", "pub", "-i", "10",
				"-f", "/data", "-l", "/log", "-m", "0", "-j", "250"},
			expected: &Config{
				ServerEndpointAddr:  "127.0.0.1:9090",
				ContentEndpointAddr: "http://x",
				PublicKey:           "pub",
				OnlineCheckInterval: 10 * time.Second,
				DataDir:             "/data",
				LogFile:             "/log",
				ThinkingDelayBase:   0,
				ThinkingDelayJitter: 250 * time.Millisecond,
			},
		},
		{
			name:     "subcommand flags are ignored",
			args:     []string{"mood", "--notes", "fine", "-a", "h:1"},
			expected: &Config{ServerEndpointAddr: "h:1"},
		},
		{name: "incorrect check interval", args: []string{"-i", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config, tt.args) })
			if diff := cmp.Diff(tt.expected, config); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(map[string]any{
		"server_endpoint_addr":  "srv:1",
		"public_key":            "json-key",
		"online_check_interval": "7s",
		"thinking_delay_base":   "10ms",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	cfg := defaults()
	parseJson(cfg, []string{"-c", path})

	assert.Equal(t, "srv:1", cfg.ServerEndpointAddr)
	assert.Equal(t, "json-key", cfg.PublicKey)
	assert.Equal(t, 7*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, 10*time.Millisecond, cfg.ThinkingDelayBase)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.ContentEndpointAddr)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	require.Panics(t, func() { parseJson(defaults(), []string{"-config", bad}) })
	require.Panics(t, func() { parseJson(defaults(), []string{"-c", "/does/not/exist.json"}) })
}

func TestParseEnv(t *testing.T) {
	t.Setenv("HOPEKEEPER_SERVER_ADDR", "env:1")
	t.Setenv("HOPEKEEPER_ONLINE_CHECK_INTERVAL", "5s")

	cfg := defaults()
	parseEnv(cfg)

	assert.Equal(t, "env:1", cfg.ServerEndpointAddr)
	assert.Equal(t, 5*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, "hopekeeper-dev-key", cfg.PublicKey)
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_endpoint_addr":"json:1","public_key":"json"}`), 0o600))
	t.Setenv("HOPEKEEPER_PUBLIC_KEY", "env")

	cfg := load([]string{"-c", path, "-a", "flag:1"})

	assert.Equal(t, "flag:1", cfg.ServerEndpointAddr)
	assert.Equal(t, "env", cfg.PublicKey)
}

func TestValidate(t *testing.T) {
	c := defaults()
	c.ServerEndpointAddr = ""
	c.PublicKey = ""
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server address is required")
	assert.Contains(t, err.Error(), "public key is required")

	c = defaults()
	c.OnlineCheckInterval = 0
	assert.Error(t, c.Validate())
}
