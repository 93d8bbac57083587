package algorithms

// Stage names one step of the pair pipeline
type Stage string

const (
	StageExtract       Stage = "extract_subgraph"
	StageInternalNodes Stage = "internal_nodes"
	StageBoundaryNodes Stage = "boundary_nodes"
	StageInternalEdges Stage = "internal_edges"
	StageBoundaryEdges Stage = "boundary_edges"
	StageNodeScores    Stage = "node_polarization"
)

// StageHook is notified after each pipeline stage with the size of what the
// stage produced. It must be safe for concurrent use when pairs are analysed
// in parallel.
type StageHook func(pair CommunityPair, stage Stage, count int)

// AnalyzePair runs extraction, classification, edge partition and scoring
// for one community pair. g is only read. hook may be nil.
func AnalyzePair(g *FilteredGraph, pair CommunityPair, hook StageHook) *PairResult {
	notify := func(stage Stage, count int) {
		if hook != nil {
			hook(pair, stage, count)
		}
	}

	sg := NewSubgraph(pair, ExtractPair(g.Edges, pair))
	notify(StageExtract, len(sg.Edges))

	internal := InternalNodes(sg)
	notify(StageInternalNodes, len(internal))

	boundary := BoundaryNodes(sg, g.Labels, internal)
	notify(StageBoundaryNodes, len(boundary))

	internalEdges, boundaryEdges := PartitionEdges(sg, internal, boundary)
	notify(StageInternalEdges, len(internalEdges))
	notify(StageBoundaryEdges, len(boundaryEdges))

	scores, excluded := ScoreNodes(boundary, internalEdges, boundaryEdges)
	notify(StageNodeScores, len(scores))

	return &PairResult{
		Pair:          pair,
		Polarization:  MeanPolarization(scores),
		NodeScores:    scores,
		Edges:         len(sg.Edges),
		InternalNodes: len(internal),
		BoundaryNodes: len(boundary),
		InternalEdges: len(internalEdges),
		BoundaryEdges: len(boundaryEdges),
		Excluded:      excluded,
	}
}
