package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the HopeKeeper terminal client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - ContentEndpointAddr: base URL of the public content API.
//   - PublicKey: key sent in the api_key metadata of every call.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DataDir: local database, downloads and exports live here.
//   - LogFile: rotated JSON log. The REPL owns stdout, so logs never go there.
//   - ThinkingDelayBase / ThinkingDelayJitter: the chat companion's pause
//     before replying is Base plus a random share of Jitter.
type Config struct {
	ServerEndpointAddr  string
	ContentEndpointAddr string
	PublicKey           string
	OnlineCheckInterval time.Duration
	DataDir             string
	LogFile             string
	ThinkingDelayBase   time.Duration
	ThinkingDelayJitter time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.ContentEndpointAddr = "http://127.0.0.1:8080"
	c.PublicKey = "hopekeeper-dev-key"
	c.OnlineCheckInterval = 3 * time.Second
	c.DataDir = defaultDataDir()
	c.LogFile = ""
	c.ThinkingDelayBase = 1500 * time.Millisecond
	c.ThinkingDelayJitter = 3000 * time.Millisecond
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".hopekeeper"
	}
	return filepath.Join(home, ".hopekeeper")
}

// LogPath is LogFile, or client.log inside DataDir when LogFile is empty.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "client.log")
}

// DatabasePath is the SQLite file holding metadata and the offline queue.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "hopekeeper.db")
}

// Validate reports settings the client cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.ServerEndpointAddr == "" {
		errs = append(errs, errors.New("server address is required"))
	}
	if c.PublicKey == "" {
		errs = append(errs, errors.New("public key is required"))
	}
	if c.OnlineCheckInterval <= 0 {
		errs = append(errs, errors.New("online check interval must be positive"))
	}
	if c.ThinkingDelayBase < 0 || c.ThinkingDelayJitter < 0 {
		errs = append(errs, errors.New("thinking delay must not be negative"))
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), command-line flags (if present) and HOPEKEEPER_*
// environment variables. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	parseEnv(cfg)
	return cfg
}
