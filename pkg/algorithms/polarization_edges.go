package algorithms

// PartitionEdges splits the subgraph edges used for scoring.
//
// internalEdges link a boundary node to an internal node of the same
// community. boundaryEdges link two boundary nodes of different communities.
// Every other edge is ignored.
func PartitionEdges(sg *Subgraph, internal, boundary NodeSet) (internalEdges, boundaryEdges []Edge) {
	internalEdges = make([]Edge, 0)
	boundaryEdges = make([]Edge, 0)

	for _, e := range sg.Edges {
		srcB, dstB := boundary.Has(e.Source), boundary.Has(e.Target)

		switch {
		case srcB && dstB:
			if e.CrossCommunity() {
				boundaryEdges = append(boundaryEdges, e)
			}
		case srcB && internal.Has(e.Target), dstB && internal.Has(e.Source):
			if !e.CrossCommunity() {
				internalEdges = append(internalEdges, e)
			}
		}
	}

	return internalEdges, boundaryEdges
}
