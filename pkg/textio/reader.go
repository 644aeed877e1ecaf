package textio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/transitcat/pkg/catalogue"
	"github.com/matzehuels/transitcat/pkg/errors"
	"github.com/matzehuels/transitcat/pkg/geo"
)

// Command is one parsed base line such as "Stop A: 55.6, 37.2".
type Command struct {
	Kind        string // "Stop" or "Bus"
	Name        string
	Description string
}

// ParseCommand splits a line into kind, name, and the text after the colon.
// It reports false for lines that are not commands.
func ParseCommand(line string) (Command, bool) {
	head, desc, ok := strings.Cut(line, ":")
	if !ok {
		return Command{}, false
	}
	kind, name, ok := strings.Cut(strings.TrimLeft(head, " "), " ")
	name = strings.TrimSpace(name)
	if !ok || name == "" || (kind != "Stop" && kind != "Bus") {
		return Command{}, false
	}
	return Command{Kind: kind, Name: name, Description: desc}, true
}

// Distance is a road distance parsed from a stop line.
type Distance struct {
	To     string
	Meters float64
}

// ParseStop parses the description of a stop command.
func ParseStop(desc string) (geo.Coordinates, []Distance, error) {
	parts := strings.Split(desc, ",")
	if len(parts) < 2 {
		return geo.Coordinates{}, nil, errors.New(errors.ErrCodeInvalidFormat, "expected \"lat, lng\", got %q", desc)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.Coordinates{}, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "latitude")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.Coordinates{}, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "longitude")
	}

	var dists []Distance
	for _, p := range parts[2:] {
		d, err := parseDistance(p)
		if err != nil {
			return geo.Coordinates{}, nil, err
		}
		dists = append(dists, d)
	}
	return geo.Coordinates{Lat: lat, Lng: lng}, dists, nil
}

func parseDistance(s string) (Distance, error) {
	meters, to, ok := strings.Cut(strings.TrimSpace(s), "m to ")
	to = strings.TrimSpace(to)
	if !ok || to == "" {
		return Distance{}, errors.New(errors.ErrCodeInvalidFormat, "expected \"Dm to NAME\", got %q", strings.TrimSpace(s))
	}
	v, err := strconv.ParseFloat(meters, 64)
	if err != nil {
		return Distance{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "distance to %s", to)
	}
	return Distance{To: to, Meters: v}, nil
}

// ParseRoute splits a bus description into stop names. A description
// using ">" is a roundtrip; otherwise stops are separated by "-".
func ParseRoute(desc string) (stops []string, roundtrip bool) {
	sep := "-"
	if strings.Contains(desc, ">") {
		sep, roundtrip = ">", true
	}
	for _, s := range strings.Split(desc, sep) {
		if s = strings.TrimSpace(s); s != "" {
			stops = append(stops, s)
		}
	}
	return stops, roundtrip
}

// Reader collects base commands and applies them to a new catalogue.
type Reader struct {
	commands []Command
}

// ParseLine records the command on line. It reports false and records
// nothing if the line is not a command.
func (r *Reader) ParseLine(line string) bool {
	cmd, ok := ParseCommand(line)
	if ok {
		r.commands = append(r.commands, cmd)
	}
	return ok
}

// Commands returns the commands recorded so far.
func (r *Reader) Commands() []Command { return r.commands }

// ReadBase reads a count line and then that many command lines from br.
func (r *Reader) ReadBase(br *bufio.Reader) error {
	lines, err := readSection(br)
	if err != nil {
		return fmt.Errorf("base requests: %w", err)
	}
	for _, line := range lines {
		r.ParseLine(line)
	}
	return nil
}

// Apply builds a catalogue from the recorded commands: stops first, then
// road distances, then buses.
func (r *Reader) Apply() (*catalogue.Catalogue, error) {
	type stopDistances struct {
		from  string
		dists []Distance
	}
	var pending []stopDistances

	sb := catalogue.NewStopBuilder()
	for _, c := range r.commands {
		if c.Kind != "Stop" {
			continue
		}
		pos, dists, err := ParseStop(c.Description)
		if err != nil {
			return nil, fmt.Errorf("stop %s: %w", c.Name, err)
		}
		if err := sb.AddStop(c.Name, pos); err != nil {
			return nil, err
		}
		pending = append(pending, stopDistances{c.Name, dists})
	}

	nb := sb.Seal()
	for _, p := range pending {
		for _, d := range p.dists {
			if err := nb.AddDistance(p.from, d.To, d.Meters); err != nil {
				return nil, fmt.Errorf("distance %s -> %s: %w", p.from, d.To, err)
			}
		}
	}
	for _, c := range r.commands {
		if c.Kind != "Bus" {
			continue
		}
		stops, roundtrip := ParseRoute(c.Description)
		if err := nb.AddRoute(c.Name, stops, roundtrip); err != nil {
			return nil, err
		}
	}
	return nb.Build(), nil
}

// readSection reads a count line followed by that many lines.
func readSection(br *bufio.Reader) ([]string, error) {
	first, err := readLine(br)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil || n < 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "expected a request count, got %q", first)
	}
	lines := make([]string, 0, n)
	for range n {
		line, err := readLine(br)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// readLine returns the next non-empty line without its terminator.
func readLine(br *bufio.Reader) (string, error) {
	for {
		line, err := br.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(trimmed) != "" {
			return trimmed, nil
		}
		if err != nil {
			if err == io.EOF {
				return "", errors.New(errors.ErrCodeInvalidFormat, "unexpected end of input")
			}
			return "", err
		}
	}
}
