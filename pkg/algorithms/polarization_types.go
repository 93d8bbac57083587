package algorithms

import (
	"sort"
)

// NodeID identifies a node in the interaction graph
type NodeID string

// CommunityID is a modularity class label assigned to a node
type CommunityID int

// Labels maps every labelled node to its community
type Labels map[NodeID]CommunityID

// RawEdge is an edge as loaded from the edge table, before the label join
type RawEdge struct {
	Source NodeID
	Target NodeID
}

// Edge is an edge annotated with the communities of both endpoints
type Edge struct {
	Source          NodeID
	Target          NodeID
	SourceCommunity CommunityID
	TargetCommunity CommunityID
}

// CrossCommunity reports whether the edge joins two different communities
func (e Edge) CrossCommunity() bool {
	return e.SourceCommunity != e.TargetCommunity
}

// Touches reports whether n is one of the edge's endpoints
func (e Edge) Touches(n NodeID) bool {
	return e.Source == n || e.Target == n
}

// Raw drops the community annotation
func (e Edge) Raw() RawEdge {
	return RawEdge{Source: e.Source, Target: e.Target}
}

// CommunityPair is an unordered pair of communities with A < B
type CommunityPair struct {
	A CommunityID
	B CommunityID
}

// Contains reports whether c is one of the pair's communities
func (p CommunityPair) Contains(c CommunityID) bool {
	return c == p.A || c == p.B
}

// NodeSet is an unordered set of nodes
type NodeSet map[NodeID]struct{}

// Add inserts n into the set
func (s NodeSet) Add(n NodeID) {
	s[n] = struct{}{}
}

// Has reports whether n is in the set
func (s NodeSet) Has(n NodeID) bool {
	_, ok := s[n]
	return ok
}

// Slice returns the members sorted by id
func (s NodeSet) Slice() []NodeID {
	out := make([]NodeID, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NodeScores holds the polarization of each scored boundary node
type NodeScores map[NodeID]float64

// Polarization is a pair-level score. Valid is false when the pair has no
// scored boundary node, in which case Value carries no meaning.
type Polarization struct {
	Value float64
	Valid bool
}

// PairResult is the outcome of running the pipeline on one community pair
type PairResult struct {
	Pair          CommunityPair
	Polarization  Polarization
	NodeScores    NodeScores
	Edges         int // Edges in the pair subgraph
	InternalNodes int
	BoundaryNodes int
	InternalEdges int // Boundary to internal, same community
	BoundaryEdges int // Boundary to boundary, different communities
	Excluded      int // Boundary nodes dropped by the zero-degree guard
}
