package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/transitcat/pkg/cache"
	"github.com/matzehuels/transitcat/pkg/errors"
	"github.com/matzehuels/transitcat/pkg/graph"
	"github.com/matzehuels/transitcat/pkg/render/dot"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"

	svgCacheTTL = 7 * 24 * time.Hour

	envCacheURL = "TRANSITCAT_CACHE_URL"
)

// graphOpts holds options for the graph command.
type graphOpts struct {
	file     string
	format   string
	output   string
	from     string
	to       string
	detailed bool
	noCache  bool
	cacheDir string
	cacheURL string
}

// graphCommand exports the routing graph.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the routing graph as DOT or SVG",
		Long: `Export the routing graph of a request document.

Each stop is drawn as a cluster holding its arrival and departure vertices.
With --from and --to the fastest route between the two stops is highlighted.`,
		Example: `  transitcat graph -f requests.json > graph.dot
  transitcat graph -f requests.json --format svg -o graph.svg --from A --to B`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "request document (default: stdin)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.from, "from", "", "highlight the route from this stop")
	cmd.Flags().StringVar(&opts.to, "to", "", "highlight the route to this stop")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label edges with travel times")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always re-render SVG output")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "SVG cache directory (default: user cache dir)")
	cmd.Flags().StringVar(&opts.cacheURL, "cache-url", os.Getenv(envCacheURL), "shared Redis SVG cache, e.g. redis://localhost:6379/0 (default: $"+envCacheURL+")")
	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, opts graphOpts) error {
	if opts.format != formatDOT && opts.format != formatSVG {
		return errors.New(errors.ErrCodeUnsupported, "unknown format %q (want dot or svg)", opts.format)
	}
	if (opts.from == "") != (opts.to == "") {
		return errors.New(errors.ErrCodeInvalidInput, "--from and --to must be given together")
	}

	ctx := cmd.Context()
	net, err := c.loadNetwork(cmd, opts.file)
	if err != nil {
		return err
	}

	var highlight []graph.EdgeID
	if opts.from != "" {
		if !net.HasStop(opts.from) || !net.HasStop(opts.to) {
			return errors.New(errors.ErrCodeStopNotFound, "stop %q or %q not found", opts.from, opts.to)
		}
		path, ok := net.Path(opts.from, opts.to)
		if !ok {
			return errors.New(errors.ErrCodeUnreachable, "no route from %q to %q", opts.from, opts.to)
		}
		highlight = path.Edges
	}

	text := dot.ToDOT(net, dot.Options{Detailed: opts.detailed, Highlight: highlight})
	out := []byte(text)
	if opts.format == formatSVG {
		store := openCache(ctx, opts)
		defer store.Close()
		if out, err = renderSVG(cmd, store, text); err != nil {
			return err
		}
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return err
	}
	printFile(cmd.ErrOrStderr(), opts.output)
	return nil
}

// openCache returns the SVG cache for opts: Redis when a cache URL is set,
// otherwise a directory. It falls back to a [cache.NullCache] when caching
// is off or the backend is unusable.
func openCache(ctx context.Context, opts graphOpts) cache.Cache {
	if opts.noCache {
		return cache.NullCache{}
	}
	logger := loggerFromContext(ctx)
	if opts.cacheURL != "" {
		if !cache.IsRedisURL(opts.cacheURL) {
			logger.Warn("svg cache disabled: not a redis url", "url", opts.cacheURL)
			return cache.NullCache{}
		}
		rc, err := cache.NewRedisCache(ctx, opts.cacheURL)
		if err != nil {
			logger.Warn("svg cache disabled", "err", err)
			return cache.NullCache{}
		}
		return rc
	}
	dir := opts.cacheDir
	if dir == "" {
		d, err := cache.DefaultDir()
		if err != nil {
			logger.Warn("svg cache disabled", "err", err)
			return cache.NullCache{}
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("svg cache disabled", "dir", dir, "err", err)
		return cache.NullCache{}
	}
	return fc
}

// renderSVG renders DOT text, reusing a cached rendering of identical text.
func renderSVG(cmd *cobra.Command, store cache.Cache, text string) ([]byte, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	key := cache.Key(formatSVG, text)

	if svg, ok, err := store.Get(ctx, key); err != nil {
		logger.Warn("svg cache read failed", "err", err)
	} else if ok {
		logger.Debug("svg cache hit", "key", key)
		return svg, nil
	}

	spin := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering SVG...")
	spin.Start()
	svg, err := dot.RenderSVG(ctx, text)
	spin.Stop()
	if err != nil {
		return nil, err
	}
	if err := store.Set(ctx, key, svg, svgCacheTTL); err != nil {
		logger.Warn("svg cache write failed", "err", err)
	}
	return svg, nil
}
