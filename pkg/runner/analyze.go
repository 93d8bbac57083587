package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-polarization/pkg/algorithms"
	"github.com/dd0wney/cluso-polarization/pkg/logging"
	"github.com/dd0wney/cluso-polarization/pkg/metrics"
	"github.com/dd0wney/cluso-polarization/pkg/parallel"
)

// stageMessages mirror the step names of the run log
var stageMessages = map[algorithms.Stage]string{
	algorithms.StageExtract:       "Extracting pair subgraph",
	algorithms.StageInternalNodes: "Finding internal nodes",
	algorithms.StageBoundaryNodes: "Finding nodes on boundary",
	algorithms.StageInternalEdges: "Creating set of edges with internal nodes",
	algorithms.StageBoundaryEdges: "Creating set of edges with nodes on boundary",
	algorithms.StageNodeScores:    "Calculation of nodes polarization",
}

// Analyze runs the pair pipeline for every pair on a pool of workers.
// Results come back in the order of pairs. g is shared read-only between
// workers and each worker fills only its own slot.
func Analyze(ctx context.Context, g *algorithms.FilteredGraph, pairs []algorithms.CommunityPair,
	workers int, logger logging.Logger, reg *metrics.Registry) ([]*algorithms.PairResult, error) {

	out := make([]*algorithms.PairResult, len(pairs))

	hook := func(pair algorithms.CommunityPair, stage algorithms.Stage, count int) {
		logger.Debug(stageMessages[stage],
			logging.CommunityA(int(pair.A)),
			logging.CommunityB(int(pair.B)),
			logging.Stage(string(stage)),
			logging.Count(count))
	}

	err := parallel.ForEach(workers, len(pairs), func(i int) {
		if ctx.Err() != nil {
			return
		}
		pair := pairs[i]
		start := time.Now()
		result := algorithms.AnalyzePair(g, pair, hook)
		elapsed := time.Since(start)

		reg.RecordPair(result.Polarization.Valid, result.InternalNodes, result.BoundaryNodes, result.Excluded, elapsed)
		if result.Excluded > 0 {
			logger.Warn("boundary nodes without counted edges left out of the average",
				logging.CommunityA(int(pair.A)),
				logging.CommunityB(int(pair.B)),
				logging.Count(result.Excluded))
		}
		logger.Info("Calculation of pair polarization",
			logging.CommunityA(int(pair.A)),
			logging.CommunityB(int(pair.B)),
			logging.Int("internal_nodes", result.InternalNodes),
			logging.Int("boundary_nodes", result.BoundaryNodes),
			logging.Polarization(result.Polarization.Value, result.Polarization.Valid),
			logging.Latency(elapsed))

		out[i] = result
	})
	if err != nil {
		return nil, fmt.Errorf("pair analysis failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
