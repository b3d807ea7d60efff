// ABOUTME: Tests for getfit configuration management.
// ABOUTME: Covers load/save, defaults, env overrides, profile merging and backend selection.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/getfit/internal/models"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.GetBackend(); got != "sqlite" {
		t.Errorf("GetBackend() = %q, want sqlite", got)
	}
	if got := cfg.GetDataDir(); got == "" {
		t.Error("GetDataDir() returned empty string")
	}
	if !cfg.GetPreserveUserEdits() {
		t.Error("GetPreserveUserEdits() should default to true")
	}
	if got := cfg.GetChallengeDays(); got != 90 {
		t.Errorf("GetChallengeDays() = %d, want 90", got)
	}
	if got := cfg.GetLogLevel(); got != "warn" {
		t.Errorf("GetLogLevel() = %q, want warn", got)
	}
	if got := cfg.GetHTTPAddr(); got != DefaultHTTPAddr {
		t.Errorf("GetHTTPAddr() = %q, want %q", got, DefaultHTTPAddr)
	}
}

func TestExplicitValues(t *testing.T) {
	preserve := false
	cfg := &Config{
		Backend:           "markdown",
		DataDir:           "/tmp/getfit-test",
		PreserveUserEdits: &preserve,
		ChallengeDays:     30,
		HTTPAddr:          ":9000",
	}

	if got := cfg.GetBackend(); got != "markdown" {
		t.Errorf("GetBackend() = %q", got)
	}
	if got := cfg.GetDataDir(); got != "/tmp/getfit-test" {
		t.Errorf("GetDataDir() = %q", got)
	}
	if cfg.GetPreserveUserEdits() {
		t.Error("GetPreserveUserEdits() should be false")
	}
	if got := cfg.GetChallengeDays(); got != 30 {
		t.Errorf("GetChallengeDays() = %d", got)
	}
	if got := cfg.GetHTTPAddr(); got != ":9000" {
		t.Errorf("GetHTTPAddr() = %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/getfit-data", filepath.Join(home, "getfit-data")},
		{"relative/path", "relative/path"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/getfit-data"}
	if got, want := cfg.GetDataDir(), filepath.Join(home, "getfit-data"); got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestGetProfilesMergesOverrides(t *testing.T) {
	cfg := &Config{
		Profiles: map[models.User]models.UserProfile{
			models.UserOmkar: {StartWeight: 90.6, TargetWeight: 80},
		},
	}

	profiles := cfg.GetProfiles()
	omkar := profiles[models.UserOmkar]
	if omkar.StartWeight != 90.6 || omkar.TargetWeight != 80 {
		t.Errorf("Expected configured weights, got %+v", omkar)
	}
	if omkar.HeightCM != 177.8 {
		t.Errorf("Expected default height to survive, got %v", omkar.HeightCM)
	}
	if len(omkar.WorkoutPlan.Routine) != 7 {
		t.Errorf("Expected default routine to survive, got %d days", len(omkar.WorkoutPlan.Routine))
	}
	if !omkar.HasGoal() {
		t.Error("Expected HasGoal() with a target weight configured")
	}

	if prutha := profiles[models.UserPrutha]; prutha.HasGoal() {
		t.Error("Expected Prutha to have no goal configured")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvBackend, "markdown")
	t.Setenv(EnvDataDir, "/tmp/env-data")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvHTTPAddr, ":7000")
	t.Setenv(EnvPreserveUserEdits, "false")

	cfg := &Config{Backend: "sqlite"}
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}

	if cfg.Backend != "markdown" || cfg.DataDir != "/tmp/env-data" || cfg.LogLevel != "debug" || cfg.HTTPAddr != ":7000" {
		t.Errorf("Unexpected config after ApplyEnv: %+v", cfg)
	}
	if cfg.GetPreserveUserEdits() {
		t.Error("Expected preserve_user_edits=false from env")
	}
}

func TestApplyEnvInvalidBool(t *testing.T) {
	t.Setenv(EnvPreserveUserEdits, "sometimes")

	cfg := &Config{}
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("Expected error for invalid boolean")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("GETFIT_LOG_LEVEL=info\n"), 0600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() failed: %v", err)
	}
	if got := os.Getenv(EnvLogLevel); got != "info" {
		t.Errorf("%s = %q, want info", EnvLogLevel, got)
	}

	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("LoadEnvFile() on missing file should not error: %v", err)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.Backend != "" || cfg.DataDir != "" {
		t.Errorf("Expected empty config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "nested"))

	preserve := false
	cfg := &Config{
		Backend:           "markdown",
		DataDir:           "/tmp/getfit-data",
		PreserveUserEdits: &preserve,
		Profiles: map[models.User]models.UserProfile{
			models.UserPrutha: {TargetWeight: 60},
		},
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Backend != "markdown" || loaded.DataDir != "/tmp/getfit-data" {
		t.Errorf("Round trip mismatch: %+v", loaded)
	}
	if loaded.GetPreserveUserEdits() {
		t.Error("Expected preserve_user_edits=false after round trip")
	}
	if loaded.Profiles[models.UserPrutha].TargetWeight != 60 {
		t.Errorf("Expected Prutha target 60, got %+v", loaded.Profiles[models.UserPrutha])
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "getfit")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if got, want := GetConfigPath(), filepath.Join(dir, "getfit", "config.json"); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorage(t *testing.T) {
	for _, backend := range []string{"", "sqlite", "markdown"} {
		t.Run("backend="+backend, func(t *testing.T) {
			dir := t.TempDir()
			cfg := &Config{Backend: backend, DataDir: dir}

			repo, err := cfg.OpenStorage()
			if err != nil {
				t.Fatalf("OpenStorage() failed: %v", err)
			}
			defer repo.Close()

			if cfg.GetBackend() == "sqlite" {
				if _, err := os.Stat(filepath.Join(dir, "getfit.db")); err != nil {
					t.Errorf("Expected getfit.db to be created: %v", err)
				}
			}
		})
	}
}

func TestOpenStorageInvalidBackend(t *testing.T) {
	cfg := &Config{Backend: "invalid", DataDir: t.TempDir()}

	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("Expected error for invalid backend")
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&Config{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(data))
	}
}
