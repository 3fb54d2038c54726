package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// envConfig lists the environment overrides. Unset variables leave the
// value from earlier layers in place, so no defaults are declared here.
type envConfig struct {
	EndpointAddrGRPC             string        `env:"HOPEKEEPER_GRPC_ADDR"`
	EndpointAddrHTTP             string        `env:"HOPEKEEPER_HTTP_ADDR"`
	DatabaseDSN                  string        `env:"HOPEKEEPER_DATABASE_DSN"`
	SecretKey                    string        `env:"HOPEKEEPER_SECRET_KEY"`
	PublicKey                    string        `env:"HOPEKEEPER_PUBLIC_KEY"`
	AccessTokenValidityDuration  time.Duration `env:"HOPEKEEPER_ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration time.Duration `env:"HOPEKEEPER_REFRESH_TOKEN_TTL"`
	S3RootUser                   string        `env:"HOPEKEEPER_S3_USER"`
	S3RootPassword               string        `env:"HOPEKEEPER_S3_PASSWORD"`
	S3Bucket                     string        `env:"HOPEKEEPER_S3_BUCKET"`
	S3Region                     string        `env:"HOPEKEEPER_S3_REGION"`
	S3BaseEndpoint               string        `env:"HOPEKEEPER_S3_ENDPOINT"`
	LogFile                      string        `env:"HOPEKEEPER_LOG_FILE"`
}

// parseEnv overlays HOPEKEEPER_* variables. A malformed value panics.
func parseEnv(config *Config) {
	var e envConfig
	if err := cleanenv.ReadEnv(&e); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, e.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, e.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.SecretKey, e.SecretKey)
	setString(&config.PublicKey, e.PublicKey)
	if e.AccessTokenValidityDuration > 0 {
		config.AccessTokenValidityDuration = e.AccessTokenValidityDuration
	}
	if e.RefreshTokenValidityDuration > 0 {
		config.RefreshTokenValidityDuration = e.RefreshTokenValidityDuration
	}
	setString(&config.S3RootUser, e.S3RootUser)
	setString(&config.S3RootPassword, e.S3RootPassword)
	setString(&config.S3Bucket, e.S3Bucket)
	setString(&config.S3Region, e.S3Region)
	setString(&config.S3BaseEndpoint, e.S3BaseEndpoint)
	setString(&config.LogFile, e.LogFile)
}
