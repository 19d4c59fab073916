package main

import (
	"fmt"

	"github.com/Veraticus/the-thread-must-fit/internal/cli"
	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/spf13/cobra"
)

func washersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "washers <diameter>",
		Short: "Find washers that fit a bolt",
		Args:  cobra.ExactArgs(1),
		RunE:  runWashers,
	}

	cmd.Flags().StringP("system", "s", "both", "thread system (metric, whitworth, both)")

	return cmd
}

func runWashers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := initEngine(cfg)
	if err != nil {
		return err
	}

	diameter, err := parseDiameter(args[0], cfg.UI.Unit)
	if err != nil {
		return err
	}

	system, _ := cmd.Flags().GetString("system")
	pref, err := model.ParseSystemPreference(system)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("unknown system %q, use metric, whitworth or both", system), err)
	}

	var washers []model.Washer
	for _, s := range systemsFor(pref) {
		washers = append(washers, engine.FindWashers(diameter, s)...)
	}

	return printLine(cmd.OutOrStdout(), cli.RenderWashers(washers, cfg.UI.Unit))
}
