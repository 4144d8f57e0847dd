package config

import "github.com/spf13/viper"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen_addr", "127.0.0.1:7402")
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.websocket", true)

	v.SetDefault("store.backend", "pebble")
	v.SetDefault("store.path", "data/state")

	v.SetDefault("event_log.enabled", true)
	v.SetDefault("event_log.driver", "sqlite")
	v.SetDefault("event_log.dsn", "data/events.db")
}

// DefaultConfigTOML is the file written by `paradoxd init`.
const DefaultConfigTOML = `[server]
listen_addr = "127.0.0.1:7402"
timeout_seconds = 30
websocket = true

[store]
# pebble, leveldb or memory
backend = "pebble"
path = "data/state"

[event_log]
enabled = true
# sqlite or postgres
driver = "sqlite"
dsn = "data/events.db"
`
