package config

import (
	"strings"
	"testing"
	"time"
)

func TestParse_MinimalConfig(t *testing.T) {
	yaml := `secret_key: tok`

	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// check defaults applied
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.StaleAfter.Duration() != 10*time.Minute {
		t.Errorf("StaleAfter = %v, want 10m", cfg.StaleAfter.Duration())
	}
	if !cfg.Seed() {
		t.Error("Seed() = false, want true by default")
	}
	if cfg.Store.Driver != DriverSQLite {
		t.Errorf("Store.Driver = %q, want %q", cfg.Store.Driver, DriverSQLite)
	}
	if cfg.Store.Path != "./data/presence.db" {
		t.Errorf("Store.Path = %q, want ./data/presence.db", cfg.Store.Path)
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
port: 9090
secret_key: abc123
stale_after: 5m
seed_status: false
store:
  driver: sqlite
  path: /var/lib/presence/db.sqlite
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.SecretKey != "abc123" {
		t.Errorf("SecretKey = %q, want abc123", cfg.SecretKey)
	}
	if cfg.StaleAfter.Duration() != 5*time.Minute {
		t.Errorf("StaleAfter = %v, want 5m", cfg.StaleAfter.Duration())
	}
	if cfg.Seed() {
		t.Error("Seed() = true, want false")
	}
	if cfg.Store.Path != "/var/lib/presence/db.sqlite" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
}

func TestParse_MemoryDriver(t *testing.T) {
	cfg, err := Parse([]byte("secret_key: tok\nstore:\n  driver: memory\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Store.Driver != DriverMemory {
		t.Errorf("Store.Driver = %q, want memory", cfg.Store.Driver)
	}
	if cfg.Store.Path != "" {
		t.Errorf("Store.Path = %q, want empty for memory driver", cfg.Store.Path)
	}
}

func TestParse_EnvVarSubstitution(t *testing.T) {
	// t.Setenv auto-restores after test
	t.Setenv("TEST_SECRET", "from-env")
	t.Setenv("TEST_DB_DIR", "/tmp/presence")

	yaml := `
secret_key: ${TEST_SECRET}
store:
  path: ${TEST_DB_DIR}/db.sqlite
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.SecretKey != "from-env" {
		t.Errorf("SecretKey = %q, want from-env", cfg.SecretKey)
	}
	if cfg.Store.Path != "/tmp/presence/db.sqlite" {
		t.Errorf("Store.Path = %q, want /tmp/presence/db.sqlite", cfg.Store.Path)
	}
}

func TestParse_EnvVarMissing(t *testing.T) {
	// MISSING_SECRET_VAR is expected to not exist in the environment
	_, err := Parse([]byte(`secret_key: ${MISSING_SECRET_VAR}`))
	if err == nil {
		t.Fatal("Parse() expected error for missing env var, got nil")
	}
	if !strings.Contains(err.Error(), "MISSING_SECRET_VAR") {
		t.Errorf("error should mention MISSING_SECRET_VAR: %v", err)
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("SECRET_KEY", "tok")
	t.Setenv("PRESENCE_DB_PATH", "/tmp/p.db")

	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if cfg.SecretKey != "tok" {
		t.Errorf("SecretKey = %q, want tok", cfg.SecretKey)
	}
	if cfg.Store.Path != "/tmp/p.db" {
		t.Errorf("Store.Path = %q, want /tmp/p.db", cfg.Store.Path)
	}
	if !cfg.Seed() {
		t.Error("Seed() = false, want true")
	}
}

func TestDefault_SecretKeyEmpty(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := Default()
	if err == nil || !strings.Contains(err.Error(), "secret_key is required") {
		t.Errorf("Default() error = %v, want secret_key is required", err)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantErrLike string
	}{
		{
			name:        "no secret",
			yaml:        `port: 8080`,
			wantErrLike: "secret_key is required",
		},
		{
			name:        "port too large",
			yaml:        "secret_key: tok\nport: 70000",
			wantErrLike: "port must be between",
		},
		{
			name:        "negative port",
			yaml:        "secret_key: tok\nport: -1",
			wantErrLike: "port must be between",
		},
		{
			name:        "stale_after too small",
			yaml:        "secret_key: tok\nstale_after: 10ms",
			wantErrLike: "stale_after must be at least",
		},
		{
			name:        "negative stale_after",
			yaml:        "secret_key: tok\nstale_after: -1m",
			wantErrLike: "stale_after must be at least",
		},
		{
			name:        "unknown driver",
			yaml:        "secret_key: tok\nstore:\n  driver: redis",
			wantErrLike: "store.driver must be",
		},
		{
			name:        "invalid duration",
			yaml:        "secret_key: tok\nstale_after: soon",
			wantErrLike: "invalid duration",
		},
		{
			name:        "invalid YAML",
			yaml:        "secret_key: [unclosed",
			wantErrLike: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErrLike) {
				t.Errorf("Parse() error = %v, want error containing %q", err, tt.wantErrLike)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/presence.yaml")
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Load() error = %v, want read failure", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR", "value")
	t.Setenv("EMPTY_VAR", "") // set but empty

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"no vars", "plain text", "plain text", false},
		{"simple var", "${TEST_VAR}", "value", false},
		{"var in text", "prefix ${TEST_VAR} suffix", "prefix value suffix", false},
		{"multiple vars", "${TEST_VAR}-${TEST_VAR}", "value-value", false},
		{"with default (var set)", "${TEST_VAR:-default}", "value", false},
		{"with default (var unset)", "${UNSET:-default}", "default", false},
		{"missing required", "${MISSING}", "", true},
		{"empty default (var unset)", "${UNSET:-}", "", false},
		{"set but empty var", "${EMPTY_VAR}", "", false},
		{"set but empty with default", "${EMPTY_VAR:-fallback}", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandEnvVars(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expandEnvVars() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expandEnvVars() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandEnvVars() = %q, want %q", got, tt.want)
			}
		})
	}
}
