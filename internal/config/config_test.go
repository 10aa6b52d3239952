package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTP.Addr() != "localhost:8000" {
		t.Errorf("Addr() = %q, want localhost:8000", cfg.HTTP.Addr())
	}
	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected timeouts: %+v", cfg.HTTP)
	}
	if !cfg.MetricsEnabled() {
		t.Error("metrics should be enabled by default")
	}
}

func TestParse_Values(t *testing.T) {
	data := []byte(`
http:
  host: 0.0.0.0
  port: 9090
  read_timeout_sec: 3
logging:
  level: debug
metrics:
  enabled: false
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTP.Addr() != "0.0.0.0:9090" {
		t.Errorf("Addr() = %q", cfg.HTTP.Addr())
	}
	if cfg.HTTP.ReadTimeoutSec != 3 {
		t.Errorf("ReadTimeoutSec = %d, want 3", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("WriteTimeoutSec = %d, want default 10", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.MetricsEnabled() {
		t.Error("metrics should be disabled")
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("ISKWET_TEST_PORT", "8123")

	cfg, err := Parse([]byte("http:\n  port: ${ISKWET_TEST_PORT}\n  host: ${ISKWET_TEST_UNSET:-127.0.0.1}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8123 {
		t.Errorf("Port = %d, want 8123", cfg.HTTP.Port)
	}
	if cfg.HTTP.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want fallback 127.0.0.1", cfg.HTTP.Host)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "http: [", "failed to parse config"},
		{"port too large", "http:\n  port: 70000\n", "http.port"},
		{"negative port", "http:\n  port: -1\n", "http.port"},
		{"bad level", "logging:\n  level: loud\n", "logging.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should contain %q", err, tc.want)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.HTTP.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.HTTP.Port)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dev.yaml"), []byte("http:\n  port: 8111\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_DIR", dir)

	cfg, err := Load("dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8111 {
		t.Errorf("Port = %d, want 8111", cfg.HTTP.Port)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}

	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ISKWET_DOTENV_PORT=8222\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("ISKWET_DOTENV_PORT", "")
	os.Unsetenv("ISKWET_DOTENV_PORT")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := Parse([]byte("http:\n  port: ${ISKWET_DOTENV_PORT}\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.HTTP.Port != 8222 {
		t.Errorf("Port = %d, want 8222", cfg.HTTP.Port)
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("missing file should be ignored: %v", err)
	}
}
