// Package report renders aggregated benchmark statistics for humans and
// machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/stackbench/stackbench/internal/bench"
	"github.com/stackbench/stackbench/internal/result"
)

// Generate reads a stored run and writes it in the requested format.
func Generate(runDir, format string, w io.Writer) error {
	results, err := result.ReadResults(runDir)
	if err != nil {
		return err
	}

	switch format {
	case "markdown":
		return WriteMarkdown(results, w)
	case "json":
		return WriteJSON(results, w)
	case "table", "":
		return WriteTable(results, w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// sortedNames returns the test names in lexical order so output is stable
// across runs.
func sortedNames(results bench.Aggregated) []string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteTable prints one line per test: name, pass rate, mean duration and
// population deviation of the merged timing samples. NaN durations mean
// the run produced no timing data for that test.
func WriteTable(results bench.Aggregated, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEST\tPASSED\tDURATION\tDEVIATION")
	fmt.Fprintln(tw, strings.Repeat("-", 60))
	for _, name := range sortedNames(results) {
		s := results[name]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			name, formatRate(s.Passed), formatSeconds(s.Duration), formatSeconds(s.Deviation))
	}
	return tw.Flush()
}

func WriteMarkdown(results bench.Aggregated, w io.Writer) error {
	fmt.Fprintln(w, "| Test | Passed | Duration | Deviation |")
	fmt.Fprintln(w, "|---|---|---|---|")
	for _, name := range sortedNames(results) {
		s := results[name]
		fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
			name, formatRate(s.Passed), formatSeconds(s.Duration), formatSeconds(s.Deviation))
	}
	return nil
}

func WriteJSON(results bench.Aggregated, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func formatRate(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", v*100)
}

func formatSeconds(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4fs", v)
}
