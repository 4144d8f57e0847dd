// Package config loads and validates the daemon configuration from a
// TOML file, environment variables and built-in defaults.
package config

import "fmt"

// Config is the complete paradoxd configuration.
type Config struct {
	Server   ServerConfig   `toml:"server" mapstructure:"server"`
	Store    StoreConfig    `toml:"store" mapstructure:"store"`
	EventLog EventLogConfig `toml:"event_log" mapstructure:"event_log"`

	configPath string
}

// ServerConfig controls the HTTP/websocket surface.
type ServerConfig struct {
	ListenAddr     string `toml:"listen_addr" mapstructure:"listen_addr"`
	TimeoutSeconds int    `toml:"timeout_seconds" mapstructure:"timeout_seconds"`
	Websocket      bool   `toml:"websocket" mapstructure:"websocket"`
}

// StoreConfig selects and locates the state store backend.
type StoreConfig struct {
	// Backend is one of "pebble", "leveldb" or "memory".
	Backend string `toml:"backend" mapstructure:"backend"`

	// Path is the database directory. Ignored by the memory backend.
	Path string `toml:"path" mapstructure:"path"`
}

// EventLogConfig controls the append-only event journal.
type EventLogConfig struct {
	Enabled bool `toml:"enabled" mapstructure:"enabled"`

	// Driver is "sqlite" or "postgres".
	Driver string `toml:"driver" mapstructure:"driver"`

	// DSN is a file path for sqlite, a connection string for postgres.
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

// Path returns the config file this Config was loaded from, empty when
// running on defaults only.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) String() string {
	return fmt.Sprintf("server=%s store=%s(%s) eventlog=%v",
		c.Server.ListenAddr, c.Store.Backend, c.Store.Path, c.EventLog.Enabled)
}
