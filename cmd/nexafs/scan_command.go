package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"nexafs/internal/logging"
	"nexafs/internal/report"
	"nexafs/internal/runlock"
	"nexafs/internal/scan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var allEdges bool
	var jsonOut bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Walk the measurement archive and report derived metadata",
		Long: `Scan walks the archive tree (<root>/<molecule>/<edge>/<files>), derives
molecule, edge, and angle metadata from names, and prints a loading line per
measurement followed by a summary. Nothing is written: the command reports
what a bulk load would ingest.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := ctx.resolveRoot(args)
			if err != nil {
				return err
			}

			logger, logCloser, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = logCloser.Close()
			}()
			logger = logger.With(logging.String(logging.FieldRunID, uuid.NewString()))

			if cfg.Paths.LogDir != "" {
				lock := runlock.New(cfg.Paths.LogDir)
				if err := lock.Acquire(); err != nil {
					return err
				}
				defer func() {
					if err := lock.Release(); err != nil {
						logger.Warn("release scan lock", logging.Args(logging.Error(err))...)
					}
				}()
			}

			out := cmd.OutOrStdout()
			opts := scan.Options{
				AllEdges:       allEdges || cfg.Scan.AllEdges,
				Extension:      cfg.Scan.Extension,
				CalibrationDir: cfg.Scan.CalibrationDir,
				// An explicitly empty calibration_dir turns the exclusion off.
				IncludeCalibration: cfg.Scan.CalibrationDir == "",
				Logger:             logger,
			}
			if !jsonOut && !quiet {
				opts.OnMeasurement = func(molecule string, edge scan.Edge, m scan.Measurement) {
					fmt.Fprintln(out, report.LoadingLine(molecule, edge.Label, m.Angle))
				}
			}

			logger.Info(
				"starting scan",
				logging.Args(
					logging.String("root", root),
					logging.Bool("all_edges", opts.AllEdges),
				)...,
			)
			result, err := scan.NewScanner(root, opts).Run(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}

			fmt.Fprintln(out, report.SummaryTable(result))
			if skipped := result.SkippedEdges(); skipped > 0 {
				note := fmt.Sprintf("%d edge directories skipped (single-edge mode); rerun with --all-edges to process them", skipped)
				fmt.Fprintln(out, report.StatusLine(out, note, true))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&allEdges, "all-edges", false, "Process every edge directory per molecule instead of stopping after the first")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the scan result as JSON instead of text")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-measurement lines; print the summary only")
	return cmd
}
