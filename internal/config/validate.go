package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Server.APIURL == "" {
		return errors.New("server.api_url is required")
	}
	u, err := url.Parse(c.Server.APIURL)
	if err != nil {
		return fmt.Errorf("server.api_url is not a valid url: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("server.api_url has unsupported scheme %q", u.Scheme)
	}

	if !strings.HasPrefix(c.Server.EventsPath, "/") {
		return errors.New("server.events_path must start with /")
	}

	if c.Reconnect.MaxAttempts < 0 {
		return errors.New("reconnect.max_attempts must be >= 0")
	}
	if c.Reconnect.Delay < 0 {
		return errors.New("reconnect.delay must be >= 0")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json", "tint":
	default:
		return fmt.Errorf("log.format must be one of text, json, tint; got %q", c.Log.Format)
	}

	return nil
}
