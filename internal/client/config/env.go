package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type envConfig struct {
	ServerEndpointAddr  string        `env:"HOPEKEEPER_SERVER_ADDR"`
	ContentEndpointAddr string        `env:"HOPEKEEPER_CONTENT_ADDR"`
	PublicKey           string        `env:"HOPEKEEPER_PUBLIC_KEY"`
	OnlineCheckInterval time.Duration `env:"HOPEKEEPER_ONLINE_CHECK_INTERVAL"`
	DataDir             string        `env:"HOPEKEEPER_DATA_DIR"`
	LogFile             string        `env:"HOPEKEEPER_LOG_FILE"`
}

// parseEnv overlays HOPEKEEPER_* variables. A malformed value panics.
func parseEnv(cfg *Config) {
	var e envConfig
	if err := cleanenv.ReadEnv(&e); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, e.ServerEndpointAddr)
	setString(&cfg.ContentEndpointAddr, e.ContentEndpointAddr)
	setString(&cfg.PublicKey, e.PublicKey)
	if e.OnlineCheckInterval > 0 {
		cfg.OnlineCheckInterval = e.OnlineCheckInterval
	}
	setString(&cfg.DataDir, e.DataDir)
	setString(&cfg.LogFile, e.LogFile)
}
