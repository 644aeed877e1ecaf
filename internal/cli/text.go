package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/transitcat/pkg/textio"
)

// textCommand answers the line-oriented text format.
func (c *CLI) textCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "text [file]",
		Short: "Answer the line-oriented text format",
		Long: `Read a count-prefixed block of "Stop" and "Bus" lines, then a
count-prefixed block of "Bus NAME" and "Stop NAME" queries, and print one
answer line per query.`,
		Example: `  transitcat text input.txt
  transitcat text < input.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			r, closeFn, err := openInput(cmd, path)
			if err != nil {
				return err
			}
			defer closeFn()

			cat, err := textio.Run(r, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("text input", "stops", cat.StopCount(), "buses", cat.BusCount())
			return nil
		},
	}
}
