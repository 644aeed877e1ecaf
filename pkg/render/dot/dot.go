// Package dot exports a routing network as a Graphviz diagram.
//
// Every stop becomes a cluster holding its arrival and departure vertices.
// Wait edges are drawn dashed inside the cluster and bus edges are drawn
// solid between clusters, labelled with the bus name and ride time.
// [Options.Highlight] marks the edges of a route in red.
//
// The diagram is a debugging view of the graph, not a map: vertex
// positions come from the Graphviz layout, not from stop coordinates.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/transitcat/pkg/graph"
	"github.com/matzehuels/transitcat/pkg/routing"
)

// Options configures DOT export.
type Options struct {
	// Detailed adds travel times to edge labels.
	Detailed bool

	// Highlight lists edges to draw emphasised, typically a route path.
	Highlight []graph.EdgeID
}

// ToDOT converts a routing network to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(n *routing.Network, opts Options) string {
	g := n.Graph()
	highlight := make(map[graph.EdgeID]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		highlight[id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for k, name := range n.StopNames() {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", k)
		fmt.Fprintf(&buf, "    label=%q;\n", name)
		buf.WriteString("    style=\"rounded,dashed\";\n")
		for _, v := range []graph.VertexID{graph.VertexID(2 * k), graph.VertexID(2*k + 1)} {
			vx, _ := n.Vertex(v)
			fmt.Fprintf(&buf, "    v%d [label=%q];\n", v, vx.String())
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for id := range g.EdgeCount() {
		eid := graph.EdgeID(id)
		e := g.Edge(eid)
		attrs := fmtAttrs(n.Action(eid), opts.Detailed, highlight[eid])
		fmt.Fprintf(&buf, "  v%d -> v%d [%s];\n", e.From, e.To, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(a routing.Action, detailed, highlighted bool) string {
	var label, attrs string
	switch a.Kind {
	case routing.Wait:
		label = "wait"
		attrs = ", style=dashed"
	default:
		label = fmt.Sprintf("%s (%d)", a.BusName, a.SpanCount)
	}
	if detailed {
		label += "\n" + strconv.FormatFloat(a.Time, 'f', 2, 64) + " min"
	}
	if highlighted {
		attrs += ", color=red, penwidth=2"
	}
	return fmt.Sprintf("label=%q%s", label, attrs)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from a
// zero origin at its natural size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
