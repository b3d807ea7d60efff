// ABOUTME: Root Cobra command for getfit CLI.
// ABOUTME: Loads config, logging, and storage in PersistentPreRunE; closes them in PersistentPostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/getfit/internal/config"
	"github.com/harperreed/getfit/internal/dashboard"
	"github.com/harperreed/getfit/internal/logging"
	"github.com/harperreed/getfit/internal/models"
	"github.com/harperreed/getfit/internal/storage"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	repo     storage.Repository
	svc      *dashboard.Service
	closeLog func() error

	flagBackend  string
	flagDataDir  string
	flagLogLevel string
	flagLogFile  string
	flagLogJSON  bool
	flagEnvFile  string
)

// skipStorage lists commands that run without opening the store.
var skipStorage = map[string]bool{
	"help":          true,
	"install-skill": true,
	"completion":    true,
}

var rootCmd = &cobra.Command{
	Use:   "getfit",
	Short: "Two-person fitness challenge tracker",
	Long: `GetFit tracks a shared fitness challenge for Omkar and Prutha.

WHAT IT TRACKS:

  Daily entries   weight plus four check-ins: workout, diet, sleep >7h, water
  Derived         BMI, daily water target, goal progress, challenge countdown
  Meal plan       one editable weekly plan shared by both users
  Workout plans   static weekly routine per user

QUICK START:

  $ getfit add Omkar 88.5 --workout --diet   # Log today's entry
  $ getfit home                               # Progress overview
  $ getfit progress Prutha                    # Daily series with gaps filled
  $ getfit meals                              # Weekly meal plan
  $ getfit meals set monday dinner "Khichdi"  # Edit one slot
  $ getfit grocery                            # Grocery-list prompt for an LLM

SERVERS:

  $ getfit serve        # JSON API + Prometheus metrics on 127.0.0.1:8501
  $ getfit mcp          # Model Context Protocol server on stdio

DATA STORAGE:

  SQLite at ~/.local/share/getfit/getfit.db by default. Set "backend":
  "markdown" in ~/.config/getfit/config.json (or GETFIT_BACKEND=markdown) to
  keep entries as Markdown files with YAML frontmatter instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipStorage[cmd.Name()] {
			return nil
		}
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

func setup() error {
	if err := config.LoadEnvFile(flagEnvFile); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	applyFlags(cfg)

	closeLog = logging.Setup(logging.Params{
		LogFileName:   cfg.LogFile,
		LogToStderr:   cfg.LogFile == "",
		LogLevel:      cfg.GetLogLevel(),
		LogFormatJSON: cfg.LogJSON,
	})

	repo, err = cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}

	if err := repo.ReseedMealPlan(models.DefaultMealPlan(), cfg.GetPreserveUserEdits()); err != nil {
		return fmt.Errorf("failed to seed meal plan: %w", err)
	}

	svc = dashboard.NewService(repo, cfg)
	log.WithFields(log.Fields{
		"backend":  cfg.GetBackend(),
		"data_dir": cfg.GetDataDir(),
	}).Debug("storage ready")
	return nil
}

func applyFlags(c *config.Config) {
	if flagBackend != "" {
		c.Backend = flagBackend
	}
	if flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}
	if flagLogFile != "" {
		c.LogFile = flagLogFile
	}
	if flagLogJSON {
		c.LogJSON = true
	}
}

func teardown() error {
	var err error
	if repo != nil {
		err = repo.Close()
		repo = nil
	}
	svc = nil
	if closeLog != nil {
		if cerr := closeLog(); cerr != nil && err == nil {
			err = cerr
		}
		closeLog = nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite or markdown")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/getfit)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "write logs to this file (rotated) instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "log in JSON format")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file with GETFIT_* variables")
}
