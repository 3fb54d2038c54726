package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/hopekeeper/internal/flagx"
	"github.com/dmitrijs2005/hopekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals
// accept strings like "3s" or integer nanoseconds. Absent keys keep the
// current value.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	ContentEndpointAddr string         `json:"content_endpoint_addr"`
	PublicKey           string         `json:"public_key"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	DataDir             string         `json:"data_dir"`
	LogFile             string         `json:"log_file"`
	ThinkingDelayBase   timex.Duration `json:"thinking_delay_base"`
	ThinkingDelayJitter timex.Duration `json:"thinking_delay_jitter"`
}

// parseJson overlays Config with the file named by -c/-config. Read or
// unmarshal errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.ContentEndpointAddr, jc.ContentEndpointAddr)
	setString(&cfg.PublicKey, jc.PublicKey)
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.LogFile, jc.LogFile)
	if jc.ThinkingDelayBase.Duration > 0 {
		cfg.ThinkingDelayBase = jc.ThinkingDelayBase.Duration
	}
	if jc.ThinkingDelayJitter.Duration > 0 {
		cfg.ThinkingDelayJitter = jc.ThinkingDelayJitter.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
