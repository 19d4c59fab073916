package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/the-thread-must-fit/internal/cli"
	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/Veraticus/the-thread-must-fit/internal/config"
	"github.com/Veraticus/the-thread-must-fit/internal/matching"
	"github.com/Veraticus/the-thread-must-fit/internal/model"
	"github.com/Veraticus/the-thread-must-fit/internal/tui"
	"github.com/Veraticus/the-thread-must-fit/internal/tui/themes"
	"github.com/Veraticus/the-thread-must-fit/internal/wizard"
	"github.com/spf13/cobra"
)

func wizardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Identify a bolt step by step",
		Long: `Walk through diameter, thread, length and head type one step at a time,
with the candidates updating as you measure. Results are kept in the
session history.

Use --plain on terminals that cannot run the full screen interface.`,
		RunE: runWizard,
	}

	cmd.Flags().Bool("plain", false, "ask line by line instead of the full screen interface")

	return cmd
}

func runWizard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := initEngine(cfg)
	if err != nil {
		return err
	}

	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		return runPlainWizard(cmd, cfg, engine)
	}

	ctx := cmd.Context()
	store, err := initHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "Failed to close history", nil)
		}
	}()

	return tui.Run(ctx,
		tui.WithEngine(engine),
		tui.WithHistory(store),
		tui.WithTheme(themes.GetTheme(cfg.UI.Theme)),
		tui.WithUnit(cfg.UI.Unit),
		tui.WithHistoryLimit(cfg.History.Limit),
	)
}

func runPlainWizard(cmd *cobra.Command, cfg config.Config, engine *matching.Engine) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	prompter := cli.NewPrompter(engine, engine.Table().HeadTypes(), cfg.UI.Unit, cmd.InOrStdin(), out)
	state, err := prompter.Run(ctx)
	if err != nil {
		if errors.Is(err, cli.ErrQuit) {
			return nil
		}
		return fmt.Errorf("wizard failed: %w", err)
	}

	view, ok := identificationView(engine, state)
	if !ok {
		return printLine(out, cli.FormatError("No measurements to identify"))
	}
	recordHistory(ctx, cfg, view.Result, view.Measurements, view.Specification)
	return printLine(out, "\n"+cli.RenderIdentification(view))
}

// identificationView turns a finished wizard state into the card printed at
// the end.
func identificationView(engine *matching.Engine, state wizard.State) (cli.IdentificationView, bool) {
	if state.Result == nil {
		return cli.IdentificationView{}, false
	}

	view := cli.IdentificationView{
		LengthCheck:   state.LengthCheck,
		Specification: state.Specification,
		Unit:          state.Unit,
		Measurements:  state.Measurements(),
		Result:        *state.Result,
	}
	if state.HeadType != "" {
		if info, ok := engine.Table().HeadType(state.HeadType); ok {
			view.HeadInfo = &info
		} else {
			view.HeadInfo = &model.HeadTypeInfo{Type: state.HeadType, Name: string(state.HeadType)}
		}
	}
	return view, true
}
