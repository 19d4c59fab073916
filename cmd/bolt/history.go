package main

import (
	"github.com/Veraticus/the-thread-must-fit/internal/cli"
	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/storage"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved identifications",
		Long: `Show the most recent identifications, newest first.

History lives in memory unless history.path in the config file (or
BOLT_HISTORY_PATH) points at a database file.`,
		RunE: runHistory,
	}

	cmd.Flags().IntP("limit", "n", 0, "number of entries to show (default from config)")
	cmd.Flags().Bool("clear", false, "delete every saved identification")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.History.Path == storage.MemoryPath {
		return printLine(out, cli.FormatInfo("History is kept in memory for the wizard session only. Set history.path to keep it between runs."))
	}

	store, err := initHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "Failed to close history", nil)
		}
	}()

	if wipe, _ := cmd.Flags().GetBool("clear"); wipe {
		if err := store.ClearHistory(ctx); err != nil {
			return err
		}
		return printLine(out, cli.FormatSuccess("History cleared"))
	}

	limit := cfg.History.Limit
	if cmd.Flags().Changed("limit") {
		limit, _ = cmd.Flags().GetInt("limit")
	}

	entries, err := store.ListHistory(ctx, limit)
	if err != nil {
		return err
	}
	return printLine(out, cli.RenderHistory(entries))
}
