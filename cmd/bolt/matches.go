package main

import (
	"fmt"

	"github.com/Veraticus/the-thread-must-fit/internal/cli"
	"github.com/spf13/cobra"
)

func matchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches <diameter>",
		Short: "List every standard near a diameter",
		Long: `List the metric and Whitworth standards whose nominal diameter is within
the tolerance of a measurement, ranked by diameter confidence.`,
		Args: cobra.ExactArgs(1),
		RunE: runMatches,
	}

	cmd.Flags().Float64P("tolerance", "t", 0, "diameter tolerance in mm (default from config)")

	return cmd
}

func runMatches(cmd *cobra.Command, args []string) error {
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

	tolerance := cfg.Matching.DiameterMm
	if cmd.Flags().Changed("tolerance") {
		tolerance, _ = cmd.Flags().GetFloat64("tolerance")
		if tolerance <= 0 {
			return fmt.Errorf("tolerance must be positive, got %g", tolerance)
		}
	}

	matches := engine.FindAllMatches(diameter, tolerance)

	out := cmd.OutOrStdout()
	if err := printLine(out, cli.FormatTitle(fmt.Sprintf("Standards within %gmm of %gmm", tolerance, diameter))); err != nil {
		return err
	}
	return printLine(out, cli.RenderAllMatches(matches, cfg.UI.Unit))
}
