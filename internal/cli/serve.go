package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/transitcat/internal/server"
)

// serveCommand serves queries over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		file    string
		addr    string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve bus, stop, and route queries over HTTP",
		Long: `Build the network of a request document once and answer queries over HTTP
until interrupted.

Endpoints:
  GET /healthz
  GET /v1/buses/{name}
  GET /v1/stops/{name}/buses
  GET /v1/route?from=A&to=B`,
		Example: `  transitcat serve -f requests.json --addr :9000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := c.loadNetwork(cmd, file)
			if err != nil {
				return err
			}
			cfg := c.cfg.Server
			if addr != "" {
				cfg.Addr = addr
			}
			srv := server.New(net, c.Logger, server.Options{AllowedOrigins: origins})
			return srv.ListenAndServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "request document (default: stdin)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origin (repeatable)")
	return cmd
}
