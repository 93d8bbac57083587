package algorithms

import (
	"sort"
)

// ScoreNodes computes p(n) = d_internal/(d_internal+d_boundary) - 0.5 for
// every boundary node. Nodes with no counted edge are left out of the
// result and reported in excluded.
func ScoreNodes(boundary NodeSet, internalEdges, boundaryEdges []Edge) (scores NodeScores, excluded int) {
	di := incidenceCounts(internalEdges)
	db := incidenceCounts(boundaryEdges)

	scores = make(NodeScores, len(boundary))
	for n := range boundary {
		total := di[n] + db[n]
		if total == 0 {
			excluded++
			continue
		}
		scores[n] = float64(di[n])/float64(total) - 0.5
	}
	return scores, excluded
}

func incidenceCounts(edges []Edge) map[NodeID]int {
	counts := make(map[NodeID]int)
	for _, e := range edges {
		counts[e.Source]++
		if e.Target != e.Source {
			counts[e.Target]++
		}
	}
	return counts
}

// MeanPolarization averages node scores into the pair score. An empty score
// set yields an invalid Polarization: such a pair has no interacting
// boundary and carries no signal.
func MeanPolarization(scores NodeScores) Polarization {
	if len(scores) == 0 {
		return Polarization{}
	}

	// Summation order fixed so repeated runs agree bit for bit
	nodes := make([]NodeID, 0, len(scores))
	for n := range scores {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	sum := 0.0
	for _, n := range nodes {
		sum += scores[n]
	}
	return Polarization{Value: sum / float64(len(scores)), Valid: true}
}
