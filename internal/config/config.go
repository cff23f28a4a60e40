package config

import "time"

// Config is the root configuration for an eventsync instance.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Auth       AuthConfig       `yaml:"auth"`
	Connection ConnectionConfig `yaml:"connection"`
	Reconnect  ReconnectConfig  `yaml:"reconnect"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig locates the backend.
type ServerConfig struct {
	APIURL     string `yaml:"api_url"`
	EventsPath string `yaml:"events_path"`
}

// AuthConfig holds the access credential. Token wins over TokenFile;
// with neither set the channel connects anonymously.
type AuthConfig struct {
	Token     string `yaml:"token"`
	TokenFile string `yaml:"token_file"`
}

// ConnectionConfig holds socket settings.
type ConnectionConfig struct {
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
}

// ReconnectConfig holds the retry policy settings.
type ReconnectConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Delay       time.Duration `yaml:"delay"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, tint
}
