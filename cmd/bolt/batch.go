package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/the-thread-must-fit/internal/cli"
	"github.com/Veraticus/the-thread-must-fit/internal/common"
	"github.com/spf13/cobra"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file.csv>",
		Short: "Identify every bolt in a CSV file",
		Long: `Identify a box of bolts in one go. Each CSV row holds diameter, pitch,
length, system and head type; a header row may name the columns in any
order. Empty cells mean not measured. Pitch is always in millimetres.
Use - to read from standard input.`,
		Example: `  bolt batch bolts.csv
  cat bolts.csv | bolt batch -`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().Bool("no-progress", false, "hide the progress bar")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := initEngine(cfg)
	if err != nil {
		return err
	}

	var input io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(filepath.Clean(args[0]))
		if err != nil {
			return common.NewUserError(fmt.Sprintf("cannot open %s", args[0]), err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				common.LogError(closeErr, "Failed to close batch file", nil)
			}
		}()
		input = f
	}

	rows, err := cli.ReadBatch(input, cfg.UI.Unit)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return printLine(cmd.OutOrStdout(), cli.FormatInfo("No rows to identify."))
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), true)
	defer handler.Stop()

	var progress io.Writer = cmd.ErrOrStderr()
	if hide, _ := cmd.Flags().GetBool("no-progress"); hide {
		progress = nil
	}

	results, err := cli.NewBatchRunner(engine, progress).Run(ctx, rows)
	if err != nil && !errors.Is(err, ctx.Err()) {
		return err
	}

	common.LogInfo("Batch complete", common.Fields{
		"rows":        len(rows),
		"processed":   len(results),
		"interrupted": handler.WasInterrupted(),
	})

	if len(results) > 0 {
		if err := printLine(cmd.OutOrStdout(), cli.RenderBatch(results)); err != nil {
			return err
		}
	}
	if err != nil && !handler.WasInterrupted() {
		return err
	}
	return nil
}
