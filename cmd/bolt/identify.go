package main

import (
	"fmt"

	"github.com/Veraticus/the-thread-must-fit/internal/cli"
	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/matching"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/Veraticus/the-thread-must-fit/internal/units"
	"github.com/spf13/cobra"
)

func identifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identify",
		Short: "Identify a bolt from its measurements",
		Long: `Identify the thread standard of a bolt from its outside diameter and,
optionally, its thread pitch and length.

Without a pitch the result is based on diameter alone and is less certain.
Whitworth pitches are given in threads per inch; with --system both, a
pitch of 5 or more is read as threads per inch.`,
		Example: `  bolt identify --diameter 7.95 --pitch 1.25
  bolt identify --diameter 5/16 --unit inch --pitch 18 --system whitworth
  bolt identify --diameter 9.9 --pitch 1.5 --length 24 --head hex --json`,
		RunE: runIdentify,
	}

	cmd.Flags().StringP("diameter", "d", "", "outside diameter (decimal or inch fraction)")
	cmd.Flags().StringP("pitch", "p", "", "thread pitch in mm, or threads per inch for Whitworth")
	cmd.Flags().StringP("length", "l", "", "length under the head")
	cmd.Flags().StringP("system", "s", "both", "thread system (metric, whitworth, both)")
	cmd.Flags().String("head", "", "head type (hex, allen, carriage, ...)")
	cmd.Flags().Bool("json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("diameter")

	return cmd
}

func runIdentify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := initEngine(cfg)
	if err != nil {
		return err
	}

	diameterFlag, _ := cmd.Flags().GetString("diameter")
	pitchFlag, _ := cmd.Flags().GetString("pitch")
	lengthFlag, _ := cmd.Flags().GetString("length")
	systemFlag, _ := cmd.Flags().GetString("system")
	headFlag, _ := cmd.Flags().GetString("head")
	asJSON, _ := cmd.Flags().GetBool("json")

	m, headInfo, err := readMeasurements(engine, cfg.UI.Unit, diameterFlag, pitchFlag, lengthFlag, systemFlag, headFlag)
	if err != nil {
		return err
	}

	result := engine.Identify(m)

	var (
		specification string
		lengthCheck   *model.LengthValidation
	)
	if result.BestMatch != nil {
		specification = matching.FormatSpecification(*result.BestMatch, m.LengthMm)
		if m.HasLength() {
			check := matching.ValidateLengthAgainstStandards(m.LengthMm, matching.StockedLengths(result.BestMatch.Standard))
			lengthCheck = &check
		}
	}

	common.LogDebug("Identified bolt", common.Fields{
		"diameter_mm":   m.DiameterMm,
		"pitch_mm":      m.PitchMm,
		"candidates":    result.TotalCandidates,
		"valid":         result.ValidMatches,
		"specification": specification,
	})

	recordHistory(ctx, cfg, result, m, specification)

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), newIdentifyOutput(result, m, specification, lengthCheck))
	}

	return printLine(cmd.OutOrStdout(), cli.RenderIdentification(cli.IdentificationView{
		LengthCheck:   lengthCheck,
		HeadInfo:      headInfo,
		Specification: specification,
		Unit:          cfg.UI.Unit,
		Measurements:  m,
		Result:        result,
	}))
}

// readMeasurements validates the raw flag values. Empty pitch, length and
// head mean not measured.
func readMeasurements(engine *matching.Engine, unit units.Unit, diameter, pitch, length, system, head string) (model.Measurements, *model.HeadTypeInfo, error) {
	var m model.Measurements

	pref, err := model.ParseSystemPreference(system)
	if err != nil {
		return m, nil, common.NewUserError(fmt.Sprintf("unknown system %q, use metric, whitworth or both", system), err)
	}
	m.Preference = pref

	if m.DiameterMm, err = parseDiameter(diameter, unit); err != nil {
		return m, nil, err
	}

	if pitch != "" {
		if m.PitchMm, err = units.ParsePitch(pitch, pref.System()); err != nil {
			return m, nil, err
		}
	}

	if length != "" {
		if m.LengthMm, err = parseLength(length, unit); err != nil {
			return m, nil, err
		}
	}

	if head == "" {
		return m, nil, nil
	}
	info, err := lookupHead(engine, head)
	if err != nil {
		return m, nil, err
	}
	m.HeadType = info.Type
	return m, &info, nil
}
