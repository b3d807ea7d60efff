// ABOUTME: GetFit configuration management with backend selection.
// ABOUTME: Handles settings, user profiles, env overrides and the storage backend factory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harperreed/getfit/internal/models"
	"github.com/harperreed/getfit/internal/progress"
	"github.com/harperreed/getfit/internal/storage"
	"github.com/joho/godotenv"
)

// DefaultHTTPAddr is the listen address for `getfit serve`.
const DefaultHTTPAddr = "127.0.0.1:8501"

// Environment variables that override the config file.
const (
	EnvBackend           = "GETFIT_BACKEND"
	EnvDataDir           = "GETFIT_DATA_DIR"
	EnvLogLevel          = "GETFIT_LOG_LEVEL"
	EnvHTTPAddr          = "GETFIT_HTTP_ADDR"
	EnvPreserveUserEdits = "GETFIT_PRESERVE_USER_EDITS"
)

// Config stores getfit configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "markdown".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts getfit.db here. Markdown puts entries/ and meal_plan.md here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/getfit.
	DataDir string `json:"data_dir,omitempty"`

	// PreserveUserEdits keeps meal plan edits across restarts. When false the
	// plan is wiped and reseeded with the defaults on every start.
	PreserveUserEdits *bool `json:"preserve_user_edits,omitempty"`

	ChallengeDays int    `json:"challenge_days,omitempty"`
	LogLevel      string `json:"log_level,omitempty"`
	LogFile       string `json:"log_file,omitempty"`
	LogJSON       bool   `json:"log_json,omitempty"`
	HTTPAddr      string `json:"http_addr,omitempty"`
	AccessLog     string `json:"access_log,omitempty"`

	// Profiles override the built-in per-user profiles field by field.
	Profiles map[models.User]models.UserProfile `json:"profiles,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetPreserveUserEdits defaults to true.
func (c *Config) GetPreserveUserEdits() bool {
	if c.PreserveUserEdits == nil {
		return true
	}
	return *c.PreserveUserEdits
}

// GetChallengeDays returns the challenge window length in days.
func (c *Config) GetChallengeDays() int {
	if c.ChallengeDays <= 0 {
		return progress.DefaultChallengeDays
	}
	return c.ChallengeDays
}

// GetLogLevel defaults to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// GetHTTPAddr returns the listen address for the HTTP API.
func (c *Config) GetHTTPAddr() string {
	if c.HTTPAddr == "" {
		return DefaultHTTPAddr
	}
	return c.HTTPAddr
}

// GetProfiles returns the built-in profiles with configured values applied.
func (c *Config) GetProfiles() map[models.User]models.UserProfile {
	profiles := models.DefaultProfiles()
	for u, override := range c.Profiles {
		profiles[u] = mergeProfile(profiles[u], override)
	}
	return profiles
}

func mergeProfile(base, override models.UserProfile) models.UserProfile {
	if override.HeightCM > 0 {
		base.HeightCM = override.HeightCM
	}
	if override.Age > 0 {
		base.Age = override.Age
	}
	if override.StartWeight > 0 {
		base.StartWeight = override.StartWeight
	}
	if override.TargetWeight > 0 {
		base.TargetWeight = override.TargetWeight
	}
	wp := override.WorkoutPlan
	if wp.Caution != "" {
		base.WorkoutPlan.Caution = wp.Caution
	}
	if len(wp.Focus) > 0 {
		base.WorkoutPlan.Focus = wp.Focus
	}
	if len(wp.Routine) > 0 {
		base.WorkoutPlan.Routine = wp.Routine
	}
	if len(wp.Tips) > 0 {
		base.WorkoutPlan.Tips = wp.Tips
	}
	return base
}

// LoadEnvFile loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from GETFIT_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv(EnvPreserveUserEdits); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPreserveUserEdits, err)
		}
		c.PreserveUserEdits = &b
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir())
}

// OpenBackend opens the named backend rooted at dataDir.
func OpenBackend(backend, dataDir string) (storage.Repository, error) {
	switch backend {
	case "sqlite":
		return storage.Open(storage.DBPath(dataDir))
	case "markdown":
		return storage.NewMarkdownStore(dataDir)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "getfit", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
