package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/transitcat/pkg/errors"
)

// busCommand prints the statistics of one bus.
func (c *CLI) busCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "bus NAME",
		Short:   "Show route statistics for a bus",
		Example: `  transitcat bus 297 -f requests.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := loadCatalogue(cmd, file)
			if err != nil {
				return err
			}
			stats, ok := cat.RouteStatistics(args[0])
			if !ok {
				return errors.New(errors.ErrCodeBusNotFound, "bus %q not found", args[0])
			}
			printBusStats(cmd.OutOrStdout(), args[0], stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "request document (default: stdin)")
	return cmd
}

// stopCommand lists the buses serving one stop.
func (c *CLI) stopCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "stop NAME",
		Short:   "List the buses serving a stop",
		Example: `  transitcat stop "Biryulyovo Zapadnoye" -f requests.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := loadCatalogue(cmd, file)
			if err != nil {
				return err
			}
			buses, ok := cat.BusesThroughStop(args[0])
			if !ok {
				return errors.New(errors.ErrCodeStopNotFound, "stop %q not found", args[0])
			}
			printStopBuses(cmd.OutOrStdout(), args[0], buses)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "request document (default: stdin)")
	return cmd
}
