package algorithms

import (
	"sort"
)

// DefaultMinCommunityFraction is the share of labelled nodes a community
// must strictly exceed to survive automatic selection
const DefaultMinCommunityFraction = 0.05

// FilteredGraph is the working graph restricted to the retained communities.
// It is never mutated after FilterGraph returns and is safe to share
// between goroutines.
type FilteredGraph struct {
	Edges  []Edge
	Labels Labels
}

// Empty reports whether no community survived filtering
func (g *FilteredGraph) Empty() bool {
	return g == nil || len(g.Labels) == 0
}

// FilterGraph restricts the graph to a working set of communities and joins
// each edge with the communities of its endpoints.
//
// With explicit ids, nodes labelled with one of them are retained. Otherwise
// every community holding strictly more than minFraction of all labelled
// nodes is retained. Edges with an endpoint outside the retained label table
// are dropped. Edge order is preserved.
func FilterGraph(edges []RawEdge, labels Labels, explicit []CommunityID, minFraction float64) *FilteredGraph {
	keep := selectCommunities(labels, explicit, minFraction)

	retained := make(Labels, len(labels))
	for node, c := range labels {
		if _, ok := keep[c]; ok {
			retained[node] = c
		}
	}

	joined := make([]Edge, 0, len(edges))
	for _, e := range edges {
		sc, ok := retained[e.Source]
		if !ok {
			continue
		}
		tc, ok := retained[e.Target]
		if !ok {
			continue
		}
		joined = append(joined, Edge{
			Source:          e.Source,
			Target:          e.Target,
			SourceCommunity: sc,
			TargetCommunity: tc,
		})
	}

	return &FilteredGraph{Edges: joined, Labels: retained}
}

func selectCommunities(labels Labels, explicit []CommunityID, minFraction float64) map[CommunityID]struct{} {
	keep := make(map[CommunityID]struct{})

	if len(explicit) > 0 {
		for _, c := range explicit {
			keep[c] = struct{}{}
		}
		return keep
	}

	sizes := CommunitySizes(labels)
	threshold := minFraction * float64(len(labels))
	for c, n := range sizes {
		if float64(n) > threshold {
			keep[c] = struct{}{}
		}
	}
	return keep
}

// CommunitySizes counts the labelled nodes of every community
func CommunitySizes(labels Labels) map[CommunityID]int {
	sizes := make(map[CommunityID]int)
	for _, c := range labels {
		sizes[c]++
	}
	return sizes
}

// Communities returns the retained community ids in ascending order
func (g *FilteredGraph) Communities() []CommunityID {
	if g.Empty() {
		return nil
	}
	sizes := CommunitySizes(g.Labels)
	ids := make([]CommunityID, 0, len(sizes))
	for c := range sizes {
		ids = append(ids, c)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Pairs enumerates every unordered pair of retained communities in
// lexicographic combination order over the sorted ids
func (g *FilteredGraph) Pairs() []CommunityPair {
	ids := g.Communities()
	if len(ids) < 2 {
		return nil
	}
	pairs := make([]CommunityPair, 0, len(ids)*(len(ids)-1)/2)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			pairs = append(pairs, CommunityPair{A: ids[i], B: ids[j]})
		}
	}
	return pairs
}

// RawEdges returns the filtered edges without their community annotation
func (g *FilteredGraph) RawEdges() []RawEdge {
	out := make([]RawEdge, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = e.Raw()
	}
	return out
}
