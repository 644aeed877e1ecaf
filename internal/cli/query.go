package cli

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/transitcat/pkg/requests"
)

// queryCommand answers a JSON request document.
func (c *CLI) queryCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "query [file]",
		Short: "Answer a JSON request document",
		Long: `Answer every stat request of a JSON request document.

The document holds base_requests (stops and buses), stat_requests, and
optional routing_settings. Responses are written as a JSON array in request
order. With no file, or "-", the document is read from stdin.`,
		Example: `  transitcat query requests.json
  transitcat query requests.json -o responses.json
  cat requests.json | transitcat query`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return c.runQuery(cmd, path, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (c *CLI) runQuery(cmd *cobra.Command, path, output string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := loadDocument(cmd, path)
	if err != nil {
		return err
	}
	res, err := requests.Process(ctx, doc, requests.Options{Settings: c.settings(), Logger: logger})
	if err != nil {
		return err
	}
	prog.done("Answered requests")

	if output == "" {
		return requests.WriteResponses(cmd.OutOrStdout(), res.Responses)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := requests.WriteResponses(bw, res.Responses); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printFile(cmd.ErrOrStderr(), output)
	return nil
}
