package main

import (
	"fmt"

	"github.com/Veraticus/the-thread-must-fit/internal/cli"
	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/spf13/cobra"
)

func tablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the reference thread tables",
		RunE:  runTables,
	}

	cmd.Flags().StringP("system", "s", "both", "thread system (metric, whitworth, both)")

	return cmd
}

func runTables(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := initEngine(cfg)
	if err != nil {
		return err
	}

	system, _ := cmd.Flags().GetString("system")
	pref, err := model.ParseSystemPreference(system)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("unknown system %q, use metric, whitworth or both", system), err)
	}

	out := cmd.OutOrStdout()
	for i, s := range systemsFor(pref) {
		if i > 0 {
			if err := printLine(out, ""); err != nil {
				return err
			}
		}
		if err := printLine(out, cli.RenderStandards(s, engine.Table().Standards(s))); err != nil {
			return err
		}
	}
	return nil
}
