package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gzhole/veritas/internal/analyzer"
	"github.com/gzhole/veritas/internal/catalog"
	"github.com/gzhole/veritas/internal/config"
	"github.com/gzhole/veritas/internal/logger"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	packPaths  []string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "veritas",
	Short: "Veritas - content inspection gateway for LLM output",
	Long: `Veritas inspects text produced by language models before it reaches a
shell, an agent or a user. It matches the text against a catalog of dangerous
command and manipulation patterns, scores the risk, decides whether to block
and returns a redacted copy with the dangerous fragments removed.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config YAML (default: ~/.veritas/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (overrides config)")
	rootCmd.PersistentFlags().StringArrayVar(&packPaths, "pack", nil, "Extra rule-pack YAML file or directory (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// ExitError carries a process exit code out of a command without printing.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps an Execute error to a process exit code, printing it unless
// it is an ExitError.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func setupLogging(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level '%s': %w", level, err)
	}
	logrus.SetLevel(parsed)
	logrus.SetOutput(os.Stderr)

	format := cfg.Logging.Format
	if logFormat != "" {
		format = logFormat
	}
	switch format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid log format '%s': want text or json", format)
	}
	return nil
}

var loadedConfig *config.Config

// loadConfig reads the config once per process.
func loadConfig() (*config.Config, error) {
	if loadedConfig != nil {
		return loadedConfig, nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	loadedConfig = cfg
	return cfg, nil
}

// packsDir is where installed rule packs live (~/.veritas/packs).
func packsDir(cfg *config.Config) string {
	return filepath.Join(cfg.ConfigDir, "packs")
}

// buildEngine compiles the built-in rules plus every rule pack from the packs
// directory, the config file and --pack flags, in that order.
func buildEngine(cfg *config.Config) (*analyzer.Engine, []catalog.PackInfo, error) {
	paths := []string{packsDir(cfg)}
	paths = append(paths, cfg.Catalog.Packs...)
	paths = append(paths, packPaths...)

	rules, infos, err := catalog.LoadPacks(paths...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rule packs: %w", err)
	}

	cat := catalog.Default()
	if len(rules) > 0 {
		cat, err = catalog.New(rules...)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid rule pack: %w", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"rules": cat.Len(),
		"packs": len(infos),
	}).Debug("Catalog loaded")

	return analyzer.NewEngine(cat), infos, nil
}

// openAuditLog opens the configured audit file, creating its directory.
func openAuditLog(cfg *config.Config) (*logger.AuditLogger, error) {
	if err := config.EnsureDir(filepath.Dir(cfg.Audit.Path)); err != nil {
		return nil, fmt.Errorf("failed to create audit dir: %w", err)
	}
	audit, err := logger.New(cfg.Audit.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	return audit, nil
}
