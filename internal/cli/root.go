package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/config"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/logging"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// RootConfig carries the persistent flags and what PersistentPreRunE
// derives from them.
type RootConfig struct {
	ConfigPath string
	DBPath     string
	LogLevel   string

	Config *config.Config
	Logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:           "signals",
		Short:         "Signals — technical indicators over OHLCV bars",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "./signals.sqlite", "SQLite bar database")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.load()
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if rc.Logger != nil {
			_ = rc.Logger.Sync()
		}
	}

	cmd.AddCommand(
		newComputeCmd(rc),
		newServeCmd(rc),
		newImportCmd(rc),
		newConfigCmd(),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "signals %s\n", Version)
		},
	})

	return cmd
}

// load reads the config file, if any, and builds the logger.
func (rc *RootConfig) load() error {
	cfg := config.Default()
	if rc.ConfigPath != "" {
		loaded, err := config.LoadFromFile(rc.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	rc.Config = cfg

	level := cfg.Log.Level
	if rc.LogLevel != "" {
		level = rc.LogLevel
	}
	logger, err := logging.New(level)
	if err != nil {
		return err
	}
	rc.Logger = logger
	return nil
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
