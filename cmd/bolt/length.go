package main

import (
	"github.com/Veraticus/the-thread-must-fit/internal/cli"
	"github.com/Veraticus/the-thread-must-fit/internal/matching"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/spf13/cobra"
)

func lengthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "length <length>",
		Short: "Round a measured length to a stocked length",
		Long: `Round a length measured under the head to the nearest stocked length.
With --designation the reading is also checked against the lengths that
standard is sold in.`,
		Args: cobra.ExactArgs(1),
		RunE: runLength,
	}

	cmd.Flags().String("designation", "", "thread designation to check against (e.g. M8, 3/8)")

	return cmd
}

func runLength(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	length, err := parseLength(args[0], cfg.UI.Unit)
	if err != nil {
		return err
	}

	designation, _ := cmd.Flags().GetString("designation")
	var check *model.LengthValidation
	if designation != "" {
		engine, err := initEngine(cfg)
		if err != nil {
			return err
		}
		std, err := lookupStandard(engine, designation)
		if err != nil {
			return err
		}
		validation := matching.ValidateLengthAgainstStandards(length, matching.StockedLengths(std))
		check = &validation
	}

	return printLine(cmd.OutOrStdout(), cli.RenderLength(matching.NormalizeLength(length), check, designation))
}
