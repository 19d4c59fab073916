package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bolt",
		Short: "🔩 Identify metric and Whitworth bolts from caliper readings",
		Long: `the-thread-must-fit: tells you which thread standard a bolt follows
from its outside diameter, thread pitch and length.

Metric ISO and British Whitworth (BSW and BSF) are both covered.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/bolt/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("unit", "mm", "unit for diameters and lengths (mm, inch)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("ui.unit", rootCmd.PersistentFlags().Lookup("unit"))

	rootCmd.AddCommand(identifyCmd())
	rootCmd.AddCommand(matchesCmd())
	rootCmd.AddCommand(pitchCmd())
	rootCmd.AddCommand(lengthCmd())
	rootCmd.AddCommand(washersCmd())
	rootCmd.AddCommand(tablesCmd())
	rootCmd.AddCommand(wizardCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, cliError(err))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/bolt", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. BOLT_MATCHING_PITCH_TOLERANCE
	viper.SetEnvPrefix("BOLT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := setupLogging(cfg.Logging); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	common.LogDebug("Configuration loaded", common.Fields{
		"config_file": viper.ConfigFileUsed(),
		"unit":        cfg.UI.Unit,
		"history":     cfg.History.Path,
	})
	return nil
}

// loadConfig resolves the configuration from the global viper instance.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func setupLogging(cfg config.LoggingConfig) error {
	level, err := common.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	return common.SetupLogger(level, cfg.Format)
}

// cliError turns an error into the line printed before exiting.
func cliError(err error) string {
	return "Error: " + common.UserMessage(err)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bolt version %s\n", version)
		},
	}
}
