// Package results persists and publishes the outcome of a polarization run.
package results

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/dd0wney/cluso-polarization/pkg/algorithms"
)

// Column headers of the pair table
var PairHeader = []string{"community_a", "community_b", "polarization"}

// Column headers of the node score table
var NodeHeader = []string{"community_a", "community_b", "node", "polarization"}

// Run is everything a sink needs to record one run
type Run struct {
	ID        string
	StartedAt time.Time
	// Results are in pair enumeration order
	Results []*algorithms.PairResult
}

// Sink receives the results of a finished run
type Sink interface {
	Name() string
	Write(ctx context.Context, run *Run) error
}

// FormatPolarization renders a pair score; a missing score is empty
func FormatPolarization(p algorithms.Polarization) string {
	if !p.Valid {
		return ""
	}
	return strconv.FormatFloat(p.Value, 'f', -1, 64)
}

func formatCommunity(c algorithms.CommunityID) string {
	return strconv.Itoa(int(c))
}

// EncodePairs writes the pair table as CSV, one row per pair in run order
func EncodePairs(w io.Writer, results []*algorithms.PairResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(PairHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range results {
		row := []string{
			formatCommunity(r.Pair.A),
			formatCommunity(r.Pair.B),
			FormatPolarization(r.Polarization),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write pair %d-%d: %w", r.Pair.A, r.Pair.B, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeNodeScores writes every scored boundary node as CSV, pairs in run
// order and nodes sorted by id
func EncodeNodeScores(w io.Writer, results []*algorithms.PairResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(NodeHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range results {
		nodes := make([]algorithms.NodeID, 0, len(r.NodeScores))
		for n := range r.NodeScores {
			nodes = append(nodes, n)
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

		for _, n := range nodes {
			row := []string{
				formatCommunity(r.Pair.A),
				formatCommunity(r.Pair.B),
				string(n),
				strconv.FormatFloat(r.NodeScores[n], 'f', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write node %s: %w", n, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
