package config

import "fmt"

var validBackends = map[string]bool{
	"pebble":  true,
	"leveldb": true,
	"memory":  true,
}

var validEventLogDrivers = map[string]bool{
	"sqlite":   true,
	"postgres": true,
}

// ValidateConfig checks the complete configuration for consistency.
func ValidateConfig(cfg *Config) error {
	if cfg.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr cannot be empty")
	}
	if cfg.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("server.timeout_seconds must be positive, got %d", cfg.Server.TimeoutSeconds)
	}

	if !validBackends[cfg.Store.Backend] {
		return fmt.Errorf("store.backend must be pebble, leveldb or memory, got %q", cfg.Store.Backend)
	}
	if cfg.Store.Backend != "memory" && cfg.Store.Path == "" {
		return fmt.Errorf("store.path is required for the %s backend", cfg.Store.Backend)
	}

	if cfg.EventLog.Enabled {
		if !validEventLogDrivers[cfg.EventLog.Driver] {
			return fmt.Errorf("event_log.driver must be sqlite or postgres, got %q", cfg.EventLog.Driver)
		}
		if cfg.EventLog.DSN == "" {
			return fmt.Errorf("event_log.dsn is required when the event log is enabled")
		}
	}
	return nil
}
