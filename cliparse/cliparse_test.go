// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("UPSTREAM_URL", "https://api.example.org")
	t.Setenv("SESSION_KEY_SALT", "test-salt")
	t.Setenv("DIRECTORY_TTL", "30s")
	t.Setenv("UPSTREAM_TIMEOUT", "")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.DirectoryTTL != 30*time.Second {
		t.Errorf("expected directory ttl 30s, got %s", cfg.DirectoryTTL)
	}
	if cfg.UpstreamTimeout != defaultUpstreamTimeout {
		t.Errorf("expected default upstream timeout, got %s", cfg.UpstreamTimeout)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-u", "http://localhost:4000", "-session-salt", "s1", "-directory-ttl", "1m"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DirectoryTTL != time.Minute {
		t.Errorf("expected directory ttl 1m, got %s", cfg.DirectoryTTL)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "DIRECTORY_TTL", "UPSTREAM_TIMEOUT"} {
		t.Setenv(key, "")
	}
	t.Setenv("UPSTREAM_URL", "http://localhost:4000")
	t.Setenv("SESSION_KEY_SALT", "salt")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != defaultPort {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" || cfg.DatabaseURL != defaultSQLiteURL {
		t.Errorf("expected default sqlite database, got %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.DirectoryTTL != defaultDirectoryTTL {
		t.Errorf("expected default directory ttl, got %s", cfg.DirectoryTTL)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing upstream", map[string]string{"SESSION_KEY_SALT": "s"}, nil},
		{"missing salt", map[string]string{"UPSTREAM_URL": "http://x"}, nil},
		{"postgres without url", map[string]string{"UPSTREAM_URL": "http://x", "SESSION_KEY_SALT": "s", "DATABASE_TYPE": "postgres"}, nil},
		{"unknown database", map[string]string{"UPSTREAM_URL": "http://x", "SESSION_KEY_SALT": "s"}, []string{"-t", "mysql"}},
		{"bad port", map[string]string{"UPSTREAM_URL": "http://x", "SESSION_KEY_SALT": "s", "PORT": "http"}, nil},
		{"bad ttl", map[string]string{"UPSTREAM_URL": "http://x", "SESSION_KEY_SALT": "s", "DIRECTORY_TTL": "soon"}, nil},
		{"missing env file", map[string]string{"UPSTREAM_URL": "http://x", "SESSION_KEY_SALT": "s"}, []string{"-env-file", "/nonexistent/.env"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, key := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "UPSTREAM_URL", "SESSION_KEY_SALT", "DIRECTORY_TTL"} {
				t.Setenv(key, "")
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tc.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "UPSTREAM_URL=http://from-file\nSESSION_KEY_SALT=file-salt\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// Register cleanup for the variables the file sets
	t.Setenv("UPSTREAM_URL", "")
	t.Setenv("SESSION_KEY_SALT", "")
	os.Unsetenv("UPSTREAM_URL")
	os.Unsetenv("SESSION_KEY_SALT")

	cfg, err := ParseFlags([]string{"-env-file", path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UpstreamURL != "http://from-file" {
		t.Errorf("expected upstream from env file, got %s", cfg.UpstreamURL)
	}
	if cfg.SessionKeySalt != "file-salt" {
		t.Errorf("expected salt from env file, got %s", cfg.SessionKeySalt)
	}
}
