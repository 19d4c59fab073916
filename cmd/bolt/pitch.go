package main

import (
	"github.com/Veraticus/the-thread-must-fit/internal/cli"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
	"github.com/spf13/cobra"
)

func pitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pitch <pitch> <designation>",
		Short: "Check a pitch reading against a standard",
		Long: `Check whether a thread gauge reading fits a standard. Metric readings are
in millimetres; for Whitworth standards give threads per inch.`,
		Example: `  bolt pitch 1.25 M8
  bolt pitch 18 5/16`,
		Args: cobra.ExactArgs(2),
		RunE: runPitch,
	}
}

func runPitch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := initEngine(cfg)
	if err != nil {
		return err
	}

	std, err := lookupStandard(engine, args[1])
	if err != nil {
		return err
	}

	pitch, err := units.ParsePitch(args[0], std.System)
	if err != nil {
		return err
	}

	validation := engine.ValidatePitch(pitch, std, cfg.Matching.PitchMm)
	return printLine(cmd.OutOrStdout(), cli.RenderPitchValidation(pitch, std, validation))
}
