package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nexafs/internal/report"
	"nexafs/internal/scan"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <molecule> [root]",
		Short: "Show the edges and measurements of one molecule",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			result, err := inventoryScan(ctx, args[1:], cmd)
			if err != nil {
				return err
			}
			for _, molecule := range result.Molecules {
				if molecule.Name != name {
					continue
				}
				if jsonOut {
					return writeJSON(cmd, molecule)
				}
				fmt.Fprintln(cmd.OutOrStdout(), report.MoleculeTable(molecule))
				return nil
			}
			return scan.Wrap(scan.ErrNotFound, "show molecule", fmt.Sprintf("no molecule directory named %q under %s", name, result.Root), nil)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the molecule as JSON instead of a table")
	return cmd
}
