package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/geosim/geosim/sim"
	"github.com/geosim/geosim/sim/trace"
)

// openOutput opens path for writing, layering gzip when the name ends in
// .gz. An empty path means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".gz") {
		return &gzipFile{gz: gzip.NewWriter(f), f: f}, nil
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

type gzipFile struct {
	gz *gzip.Writer
	f  *os.File
}

func (g *gzipFile) Write(p []byte) (int, error) { return g.gz.Write(p) }

func (g *gzipFile) Close() error {
	if err := g.gz.Close(); err != nil {
		g.f.Close()
		return err
	}
	return g.f.Close()
}

// writeEnsemble emits one CSV row per location: location,<var1>,<var2>,…
// Variables are ordered by name so output is stable across runs.
func writeEnsemble(path string, problem *sim.Problem, ensemble sim.Ensemble) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	names := make([]string, 0, len(ensemble))
	for name := range ensemble {
		names = append(names, name)
	}
	sort.Strings(names)

	w := csv.NewWriter(out)
	header := append([]string{"location"}, names...)
	if err := w.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for loc := 0; loc < problem.Domain.Len(); loc++ {
		row[0] = strconv.Itoa(loc)
		for i, name := range names {
			row[i+1] = strconv.FormatFloat(ensemble[name][loc], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// writeTrace emits the per-location decision records as CSV.
func writeTrace(path string, st *trace.SimulationTrace) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{"variable", "location", "path_position", "neighbors", "branch", "value"}); err != nil {
		return err
	}
	for _, r := range st.Locations {
		rec := []string{
			r.Variable,
			strconv.Itoa(r.Location),
			strconv.Itoa(r.PathPosition),
			strconv.Itoa(r.Neighbors),
			string(r.Branch),
			strconv.FormatFloat(r.Value, 'g', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
