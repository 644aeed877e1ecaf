package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/transitcat/pkg/buildinfo"
	"github.com/matzehuels/transitcat/pkg/catalogue"
	"github.com/matzehuels/transitcat/pkg/config"
	"github.com/matzehuels/transitcat/pkg/errors"
	"github.com/matzehuels/transitcat/pkg/observability"
	"github.com/matzehuels/transitcat/pkg/requests"
	"github.com/matzehuels/transitcat/pkg/routing"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "transitcat"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	spanCap    int
	spanCapSet bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the loaded configuration.
func (c *CLI) Config() config.Config { return c.cfg }

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Transitcat answers questions about a bus network",
		Long:         `Transitcat loads stops, road distances, and bus routes, then reports route statistics and finds the fastest trip between two stops.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (.toml, .yaml); defaults to $"+config.EnvPath)
	root.PersistentFlags().IntVar(&c.spanCap, "span-cap", 0, "maximum stops per bus edge (overrides config)")

	root.AddCommand(c.queryCommand())
	root.AddCommand(c.textCommand())
	root.AddCommand(c.busCommand())
	root.AddCommand(c.stopCommand())
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config, attaches the logger to the command context, and
// registers logging hooks.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Resolve(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.spanCapSet = cmd.Flags().Changed("span-cap")
	if c.spanCapSet {
		if err := c.settings().Validate(); err != nil {
			return err
		}
	}
	if cfg.Log.Level != "" && c.Logger.GetLevel() > log.DebugLevel {
		if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
			c.Logger.SetLevel(level)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	observability.SetRoutingHooks(logHooks{c.Logger})
	return nil
}

// =============================================================================
// Settings & Loading
// =============================================================================

// settings returns the routing defaults from config with flag overrides.
func (c *CLI) settings() routing.Settings {
	s := c.cfg.Routing.Settings()
	if c.spanCapSet {
		s.SpanCap = c.spanCap
	}
	return s
}

// loadDocument reads a request document from path, or from stdin when
// path is empty or "-".
func loadDocument(cmd *cobra.Command, path string) (*requests.Document, error) {
	if path == "" || path == "-" {
		return requests.Load(cmd.InOrStdin())
	}
	return requests.LoadFile(path)
}

// loadCatalogue reads the document at path and builds its catalogue.
func loadCatalogue(cmd *cobra.Command, path string) (*requests.Document, *catalogue.Catalogue, error) {
	doc, err := loadDocument(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	cat, err := doc.Catalogue()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build catalogue")
	}
	return doc, cat, nil
}

// loadNetwork reads the document at path and builds its catalogue and
// routing network.
func (c *CLI) loadNetwork(cmd *cobra.Command, path string) (*routing.Network, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, cat, err := loadCatalogue(cmd, path)
	if err != nil {
		return nil, err
	}
	net, err := routing.BuildContext(ctx, cat, doc.Settings(c.settings()))
	if err != nil {
		return nil, err
	}
	prog.done("Loaded network")
	logger.Debug("network", "stops", cat.StopCount(), "buses", cat.BusCount(),
		"vertices", net.Graph().VertexCount(), "edges", net.Graph().EdgeCount())
	return net, nil
}

// openInput opens path for reading, or returns stdin when path is empty
// or "-". The returned close function is always safe to call.
func openInput(cmd *cobra.Command, path string) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, nil, err
	}
	return f, f.Close, nil
}
