package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/transitcat/pkg/errors"
	"github.com/matzehuels/transitcat/pkg/routing"
)

// routeCommand finds the fastest route between two stops.
func (c *CLI) routeCommand() *cobra.Command {
	var (
		file        string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "route [FROM TO]",
		Short: "Find the fastest route between two stops",
		Long: `Find the fastest route between two stops of a request document.

With --interactive the origin and destination are picked from a list of
stops. The document must then be given with --file, since stdin is used by
the terminal.`,
		Example: `  transitcat route "Biryulyovo Zapadnoye" "Universam" -f requests.json
  transitcat route -i -f requests.json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive && file == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--interactive requires --file")
			}
			net, err := c.loadNetwork(cmd, file)
			if err != nil {
				return err
			}

			var from, to string
			if interactive {
				var ok bool
				if from, to, ok, err = pickStops(net); err != nil || !ok {
					return err
				}
			} else {
				from, to = args[0], args[1]
			}
			return printRoute(cmd, net, from, to)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "request document (default: stdin)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick stops interactively")
	return cmd
}

// pickStops runs two stop pickers. It reports false if the user quit.
func pickStops(net *routing.Network) (from, to string, ok bool, err error) {
	names := net.StopNames()
	if len(names) == 0 {
		return "", "", false, errors.New(errors.ErrCodeInvalidInput, "network has no stops")
	}
	if from, err = pickStop("Select origin", names); err != nil || from == "" {
		return "", "", false, err
	}
	if to, err = pickStop("Select destination", names); err != nil || to == "" {
		return "", "", false, err
	}
	return from, to, true, nil
}

func pickStop(title string, names []string) (string, error) {
	final, err := tea.NewProgram(NewStopListModel(title, names), tea.WithAltScreen()).Run()
	if err != nil {
		return "", fmt.Errorf("stop picker: %w", err)
	}
	return final.(StopListModel).Selected, nil
}

func printRoute(cmd *cobra.Command, net *routing.Network, from, to string) error {
	route, err := net.FindRoute(cmd.Context(), from, to)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, StyleTitle.Render(from+" "+iconArrow+" "+to))
	if len(route.Actions) == 0 {
		fmt.Fprintln(w, "  "+StyleDim.Render("already there"))
		return nil
	}
	fmt.Fprintln(w, routeTable(route))
	return nil
}
