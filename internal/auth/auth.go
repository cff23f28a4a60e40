// Package auth supplies access tokens to the connection layer.
//
// A TokenSource is read once per connect cycle. Rotating a token does
// not affect an already-open channel; the new value is picked up on the
// next reconnect.
package auth

import (
	"os"
	"strings"
)

// TokenSource provides the current access token. An empty string means
// no token is held; connecting without one is allowed.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Static returns a TokenSource that always yields the given token.
func Static(token string) TokenSource {
	return TokenFunc(func() string { return token })
}

// FromEnv returns a TokenSource backed by an environment variable.
func FromEnv(key string) TokenSource {
	return TokenFunc(func() string { return os.Getenv(key) })
}

// FileSource reads the token from a file on every call, so an external
// rotation takes effect on the next connect cycle.
type FileSource struct {
	Path string
}

// Token returns the trimmed file contents, or "" if the file is missing
// or unreadable.
func (s *FileSource) Token() string {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
