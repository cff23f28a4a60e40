package connection

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildURL derives the events endpoint URL from the configured HTTP(S)
// API origin: the scheme is rewritten to ws/wss, the events path is
// appended, and the token (when present) is carried as a query
// parameter.
func BuildURL(apiURL, eventsPath, token string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	u.Path = strings.TrimRight(u.Path, "/") + eventsPath

	if token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}
