// Package output ranks and renders final job results. Ranking and top-N
// selection live here, outside the engine, so the engine stays a pure
// aggregator.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
)

// Entry is one ranked result row.
type Entry struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// TopN ranks counts descending by value and truncates to n. Ties on value
// are broken by ascending key, so the same counts always produce the same
// ranking. n < 1 or n past the end returns all entries ranked.
func TopN(counts map[string]int, n int) []Entry {
	entries := make([]Entry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, Entry{Key: k, Value: v})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Value != b.Value {
			return b.Value - a.Value
		}
		return strings.Compare(a.Key, b.Key)
	})

	if n >= 1 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// FillZeroCounts returns a copy of counts with a zero entry for every key in
// keys not already present. Used to rank airports with no departures.
func FillZeroCounts(counts map[string]int, keys []string) map[string]int {
	filled := make(map[string]int, len(counts)+len(keys))
	for k, v := range counts {
		filled[k] = v
	}
	for _, k := range keys {
		if _, ok := filled[k]; !ok {
			filled[k] = 0
		}
	}
	return filled
}

// WriteTable renders ranked entries as a rank/key/count table.
func WriteTable(w io.Writer, keyHeader, valueHeader string, entries []Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Rank\t%s\t%s\n", keyHeader, valueHeader)
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", i+1, e.Key, e.Value)
	}
	return tw.Flush()
}

// ExportJSON writes entries to <dir>/<job name, lowercased, spaces as
// underscores>.json, creating dir if needed, and returns the file path.
func ExportJSON(jobName, dir string, entries []Entry) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := strings.ToLower(strings.ReplaceAll(jobName, " ", "_")) + ".json"
	path := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return path, nil
}
