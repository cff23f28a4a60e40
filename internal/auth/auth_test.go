package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStatic(t *testing.T) {
	src := Static("abc123")
	if got := src.Token(); got != "abc123" {
		t.Errorf("Token() = %q, want %q", got, "abc123")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("EVENTSYNC_TEST_TOKEN", "env-token")

	src := FromEnv("EVENTSYNC_TEST_TOKEN")
	if got := src.Token(); got != "env-token" {
		t.Errorf("Token() = %q, want %q", got, "env-token")
	}

	missing := FromEnv("EVENTSYNC_TEST_TOKEN_MISSING")
	if got := missing.Token(); got != "" {
		t.Errorf("Token() for unset var = %q, want empty", got)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")

	if err := os.WriteFile(path, []byte("file-token\n"), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	src := &FileSource{Path: path}
	if got := src.Token(); got != "file-token" {
		t.Errorf("Token() = %q, want %q", got, "file-token")
	}

	// Rotation: the next read sees the new value.
	if err := os.WriteFile(path, []byte("rotated\n"), 0o600); err != nil {
		t.Fatalf("rewrite token file: %v", err)
	}
	if got := src.Token(); got != "rotated" {
		t.Errorf("Token() after rotation = %q, want %q", got, "rotated")
	}
}

func TestFileSourceMissing(t *testing.T) {
	src := &FileSource{Path: filepath.Join(t.TempDir(), "nope")}
	if got := src.Token(); got != "" {
		t.Errorf("Token() for missing file = %q, want empty", got)
	}
}
