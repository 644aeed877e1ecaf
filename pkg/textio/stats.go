package textio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/transitcat/pkg/catalogue"
)

// WriteStats reads a stat section from br and writes one answer line per
// request to w. Lines that are neither Bus nor Stop requests are skipped.
func WriteStats(cat *catalogue.Catalogue, br *bufio.Reader, w io.Writer) error {
	lines, err := readSection(br)
	if err != nil {
		return fmt.Errorf("stat requests: %w", err)
	}
	for _, line := range lines {
		if err := WriteStat(cat, line, w); err != nil {
			return err
		}
	}
	return nil
}

// WriteStat answers a single "Bus NAME" or "Stop NAME" request.
func WriteStat(cat *catalogue.Catalogue, request string, w io.Writer) error {
	request = strings.TrimSpace(request)
	var out string
	switch {
	case strings.HasPrefix(request, "Bus "):
		out = busLine(cat, request, strings.TrimSpace(request[len("Bus "):]))
	case strings.HasPrefix(request, "Stop "):
		out = stopLine(cat, request, strings.TrimSpace(request[len("Stop "):]))
	default:
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func busLine(cat *catalogue.Catalogue, request, name string) string {
	stats, ok := cat.RouteStatistics(name)
	if !ok {
		return request + ": not found"
	}
	return fmt.Sprintf("%s: %d stops on route, %d unique stops, %s route length, %s curvature",
		request, stats.StopCount, stats.UniqueStopCount, formatFloat(stats.RouteLength), formatFloat(stats.Curvature))
}

func stopLine(cat *catalogue.Catalogue, request, name string) string {
	buses, ok := cat.BusesThroughStop(name)
	switch {
	case !ok:
		return request + ": not found"
	case len(buses) == 0:
		return request + ": no buses"
	default:
		return request + ": buses " + strings.Join(buses, " ")
	}
}

// formatFloat prints six significant digits, switching to exponent form
// for large values.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Run reads a base section and a stat section from r and writes the
// answers to w.
func Run(r io.Reader, w io.Writer) (*catalogue.Catalogue, error) {
	br := bufio.NewReader(r)
	var rd Reader
	if err := rd.ReadBase(br); err != nil {
		return nil, err
	}
	cat, err := rd.Apply()
	if err != nil {
		return nil, err
	}
	if err := WriteStats(cat, br, w); err != nil {
		return cat, err
	}
	return cat, nil
}
