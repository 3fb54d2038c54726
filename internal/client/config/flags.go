package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/hopekeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the backend gRPC server
//	-w string   base URL of the content API
//	-k string   public API key
//	-i int      online check interval in seconds
//	-f string   data directory
//	-l string   log file
//	-m int      chat thinking delay base, milliseconds
//	-j int      chat thinking delay jitter, milliseconds
//
// Only the flags above are read from args, so cobra subcommand flags pass
// through untouched. Malformed values panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-w", "-k", "-i", "-f", "-l", "-m", "-j"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.ContentEndpointAddr, "w", cfg.ContentEndpointAddr, "content API base URL")
	fs.StringVar(&cfg.PublicKey, "k", cfg.PublicKey, "public API key")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DataDir, "f", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file")
	delayBase := fs.Int("m", int(cfg.ThinkingDelayBase.Milliseconds()), "thinking delay base (ms)")
	delayJitter := fs.Int("j", int(cfg.ThinkingDelayJitter.Milliseconds()), "thinking delay jitter (ms)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		case "m":
			cfg.ThinkingDelayBase = time.Duration(*delayBase) * time.Millisecond
		case "j":
			cfg.ThinkingDelayJitter = time.Duration(*delayJitter) * time.Millisecond
		}
	})
}
