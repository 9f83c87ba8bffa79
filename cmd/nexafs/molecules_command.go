package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nexafs/internal/logging"
	"nexafs/internal/report"
	"nexafs/internal/scan"
)

func newMoleculesCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "molecules [root]",
		Short: "List molecules with edge and measurement counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := inventoryScan(ctx, args, cmd)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, result)
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.SummaryTable(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the inventory as JSON instead of a table")
	return cmd
}

// inventoryScan walks the archive for the listing commands. Inventory views
// always cover all edges; the single-edge load policy only applies to scan.
func inventoryScan(ctx *commandContext, args []string, cmd *cobra.Command) (*scan.Result, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	root, err := ctx.resolveRoot(args)
	if err != nil {
		return nil, err
	}
	opts := scan.Options{
		AllEdges:           true,
		Extension:          cfg.Scan.Extension,
		CalibrationDir:     cfg.Scan.CalibrationDir,
		IncludeCalibration: cfg.Scan.CalibrationDir == "",
		Logger:             logging.NewNop(),
	}
	return scan.NewScanner(root, opts).Run(cmd.Context())
}
