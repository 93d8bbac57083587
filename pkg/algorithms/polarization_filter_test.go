package algorithms

import (
	"fmt"
	"reflect"
	"testing"
)

// labelsWithSizes builds a label table with the given number of nodes per
// community
func labelsWithSizes(sizes map[CommunityID]int) Labels {
	labels := make(Labels)
	for c, n := range sizes {
		for i := 0; i < n; i++ {
			labels[NodeID(fmt.Sprintf("c%d-n%d", c, i))] = c
		}
	}
	return labels
}

func TestFilterGraph_Threshold(t *testing.T) {
	tests := []struct {
		name  string
		sizes map[CommunityID]int
		want  []CommunityID
	}{
		{"all above cutoff", map[CommunityID]int{1: 50, 2: 40, 3: 10}, []CommunityID{1, 2, 3}},
		{"exactly five percent excluded", map[CommunityID]int{1: 55, 2: 40, 3: 5}, []CommunityID{1, 2}},
		{"just above five percent", map[CommunityID]int{1: 54, 2: 40, 3: 6}, []CommunityID{1, 2, 3}},
		{"single community", map[CommunityID]int{7: 3}, []CommunityID{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := FilterGraph(nil, labelsWithSizes(tt.sizes), nil, DefaultMinCommunityFraction)
			if got := g.Communities(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Communities() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterGraph_ExplicitIDs(t *testing.T) {
	labels := labelsWithSizes(map[CommunityID]int{1: 50, 2: 1, 3: 49})
	g := FilterGraph(nil, labels, []CommunityID{2, 3}, DefaultMinCommunityFraction)

	// Explicit ids bypass the threshold
	if got, want := g.Communities(), []CommunityID{2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Communities() = %v, want %v", got, want)
	}
	if len(g.Labels) != 50 {
		t.Errorf("Expected 50 retained nodes, got %d", len(g.Labels))
	}
}

func TestFilterGraph_DropsDanglingEdges(t *testing.T) {
	labels := Labels{"a": 1, "b": 1, "c": 2, "z": 9}
	edges := []RawEdge{
		{"a", "b"},
		{"a", "c"},
		{"a", "ghost"}, // unlabelled endpoint
		{"z", "a"},     // endpoint outside the explicit set
	}

	g := FilterGraph(edges, labels, []CommunityID{1, 2}, DefaultMinCommunityFraction)
	want := []Edge{
		{Source: "a", Target: "b", SourceCommunity: 1, TargetCommunity: 1},
		{Source: "a", Target: "c", SourceCommunity: 1, TargetCommunity: 2},
	}
	if !reflect.DeepEqual(g.Edges, want) {
		t.Errorf("Edges = %v, want %v", g.Edges, want)
	}
}

func TestFilterGraph_NoSurvivors(t *testing.T) {
	labels := Labels{"a": 1, "b": 2}
	g := FilterGraph([]RawEdge{{"a", "b"}}, labels, nil, 0.9)

	if !g.Empty() {
		t.Error("Expected empty graph when no community passes the cutoff")
	}
	if len(g.Edges) != 0 {
		t.Errorf("Expected no edges, got %d", len(g.Edges))
	}
	if pairs := g.Pairs(); len(pairs) != 0 {
		t.Errorf("Expected no pairs, got %v", pairs)
	}
}

func TestFilteredGraph_Pairs(t *testing.T) {
	labels := Labels{"a": 3, "b": 1, "c": 2, "d": 1}
	g := FilterGraph(nil, labels, []CommunityID{1, 2, 3}, DefaultMinCommunityFraction)

	want := []CommunityPair{{1, 2}, {1, 3}, {2, 3}}
	if got := g.Pairs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}
}
