// Package config provides configuration management for the router CLI.
//
// Configuration is loaded from environment variables and validated on startup.
// Command-line flags override individual values after loading; call Validate
// again after applying them.
//
// Environment variables:
//   - LOG_LEVEL - debug, info, warn or error (default info)
//   - RULES_FILE - rule set path (default rules.yaml)
//   - OUTPUT_FORMAT - json or text (default json)
//   - FAIL_FAST - stop a batch at the first failed request (default false)
//   - MAX_LINE_BYTES - longest accepted batch line (default 1 MiB)
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
