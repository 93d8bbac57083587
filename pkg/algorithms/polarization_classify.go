package algorithms

// InternalNodes finds the nodes whose incident edges never leave a single
// community. A node is internal when the endpoint communities across all of
// its edges collapse to exactly one value.
func InternalNodes(sg *Subgraph) NodeSet {
	internal := make(NodeSet)

	for node, idx := range sg.incident {
		seen := make(map[CommunityID]struct{}, 2)
		for _, i := range idx {
			e := sg.Edges[i]
			seen[e.SourceCommunity] = struct{}{}
			seen[e.TargetCommunity] = struct{}{}
			if len(seen) > 1 {
				break
			}
		}
		if len(seen) == 1 {
			internal.Add(node)
		}
	}

	return internal
}

// BoundaryNodes finds the nodes sitting on the border of the pair.
//
// A boundary node has at least one cross-community edge and at least one
// same-community edge reaching an internal node of its own community.
// Candidates without any same-community edge are rejected.
func BoundaryNodes(sg *Subgraph, labels Labels, internal NodeSet) NodeSet {
	// Internal nodes grouped by community
	internalBy := make(map[CommunityID]NodeSet)
	for n := range internal {
		c, ok := labels[n]
		if !ok {
			continue
		}
		if internalBy[c] == nil {
			internalBy[c] = make(NodeSet)
		}
		internalBy[c].Add(n)
	}

	candidates := make(NodeSet)
	for _, e := range sg.Edges {
		if e.CrossCommunity() {
			candidates.Add(e.Source)
			candidates.Add(e.Target)
		}
	}

	boundary := make(NodeSet)
	for n := range candidates {
		g, ok := labels[n]
		if !ok {
			continue
		}
		core := internalBy[g]
		if len(core) == 0 {
			continue
		}

		for _, i := range sg.incident[n] {
			e := sg.Edges[i]
			if e.CrossCommunity() {
				continue
			}
			if core.Has(e.Source) || core.Has(e.Target) {
				boundary.Add(n)
				break
			}
		}
	}

	return boundary
}
