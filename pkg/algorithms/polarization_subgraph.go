package algorithms

// Subgraph is the induced subgraph of one community pair together with an
// adjacency index from each node to the positions of its incident edges
type Subgraph struct {
	Pair     CommunityPair
	Edges    []Edge
	incident map[NodeID][]int
}

// ExtractPair returns every edge whose endpoints both belong to one of the
// pair's communities: edges inside a, edges inside b and edges between them
func ExtractPair(edges []Edge, pair CommunityPair) []Edge {
	out := make([]Edge, 0)
	for _, e := range edges {
		if pair.Contains(e.SourceCommunity) && pair.Contains(e.TargetCommunity) {
			out = append(out, e)
		}
	}
	return out
}

// NewSubgraph indexes the given pair edges
func NewSubgraph(pair CommunityPair, edges []Edge) *Subgraph {
	sg := &Subgraph{
		Pair:     pair,
		Edges:    edges,
		incident: make(map[NodeID][]int),
	}
	for i, e := range edges {
		sg.incident[e.Source] = append(sg.incident[e.Source], i)
		if e.Target != e.Source {
			sg.incident[e.Target] = append(sg.incident[e.Target], i)
		}
	}
	return sg
}

// Nodes returns every node touched by an edge of the subgraph
func (sg *Subgraph) Nodes() NodeSet {
	nodes := make(NodeSet, len(sg.incident))
	for n := range sg.incident {
		nodes.Add(n)
	}
	return nodes
}

// Incident returns the edges touching n
func (sg *Subgraph) Incident(n NodeID) []Edge {
	idx := sg.incident[n]
	out := make([]Edge, len(idx))
	for i, j := range idx {
		out[i] = sg.Edges[j]
	}
	return out
}

// Degree returns the number of edges touching n
func (sg *Subgraph) Degree(n NodeID) int {
	return len(sg.incident[n])
}
