// Package config loads runtime configuration for the HopeKeeper client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags (-a -w -k -i -f -l -m -j).
//  4. HOPEKEEPER_* environment variables.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "content_endpoint_addr": "http://127.0.0.1:8080",
//	  "public_key": "hopekeeper-dev-key",
//	  "online_check_interval": "3s",
//	  "data_dir": "/home/me/.hopekeeper",
//	  "thinking_delay_base": "1.5s"
//	}
//
// Callers must run (*Config).Validate before using the result.
package config
