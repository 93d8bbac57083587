// Package runner drives a complete polarization run: load the tables,
// filter the graph, analyse every community pair and hand the results to
// the configured sinks.
package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-polarization/pkg/algorithms"
	"github.com/dd0wney/cluso-polarization/pkg/config"
	"github.com/dd0wney/cluso-polarization/pkg/dataset"
	"github.com/dd0wney/cluso-polarization/pkg/logging"
	"github.com/dd0wney/cluso-polarization/pkg/metrics"
	"github.com/dd0wney/cluso-polarization/pkg/results"
)

// Runner executes one configured run
type Runner struct {
	cfg     *config.Config
	logger  logging.Logger
	metrics *metrics.Registry
	sinks   []results.Sink
	console io.Writer
	runID   string
}

// Option customises a Runner
type Option func(*Runner)

// WithSinks sets the result sinks
func WithSinks(sinks ...results.Sink) Option {
	return func(r *Runner) { r.sinks = sinks }
}

// WithConsole sets where the summary table is rendered
func WithConsole(w io.Writer) Option {
	return func(r *Runner) { r.console = w }
}

// WithRunID overrides the generated run id
func WithRunID(id string) Option {
	return func(r *Runner) { r.runID = id }
}

// New creates a runner. A nil registry gets a private one.
func New(cfg *config.Config, logger logging.Logger, reg *metrics.Registry, opts ...Option) *Runner {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	r := &Runner{
		cfg:     cfg,
		metrics: reg,
		console: io.Discard,
		runID:   uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logger.With(logging.RunID(r.runID))
	return r
}

// RunID returns the id tagging this run's logs and stored results
func (r *Runner) RunID() string {
	return r.runID
}

// Report is the outcome of a run
type Report struct {
	RunID   string
	Graph   *algorithms.FilteredGraph
	Results []*algorithms.PairResult
	Elapsed time.Duration
}

// Run executes the whole pipeline
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	edges, labels, err := r.load()
	if err != nil {
		return nil, err
	}

	timer := logging.StartTimer(r.logger, "Filter of relevant clusters", logging.Component("filter"))
	g := algorithms.FilterGraph(edges, labels, r.cfg.CommunityIDs(), r.cfg.MinCommunityFraction)
	communities := g.Communities()
	timer.End(
		logging.Int("nodes", len(g.Labels)),
		logging.Int("edges", len(g.Edges)),
		logging.Any("communities", communities),
	)
	r.metrics.SetGraphSize(len(g.Labels), len(g.Edges), len(communities))

	if g.Empty() {
		r.logger.Warn("no community survived filtering, nothing to analyse",
			logging.Float64("min_community_fraction", r.cfg.MinCommunityFraction))
	}

	pairResults, err := Analyze(ctx, g, g.Pairs(), r.cfg.Workers, r.logger, r.metrics)
	if err != nil {
		return nil, err
	}

	report := &Report{RunID: r.runID, Graph: g, Results: pairResults}
	run := &results.Run{ID: r.runID, StartedAt: start, Results: pairResults}
	if err := r.writeSinks(ctx, run); err != nil {
		return nil, err
	}

	report.Elapsed = time.Since(start)
	if r.cfg.RenderTable {
		summary := results.Summary{
			Nodes:       len(g.Labels),
			Edges:       len(g.Edges),
			Communities: len(communities),
			Elapsed:     report.Elapsed,
		}
		if err := results.RenderTable(r.console, summary, pairResults); err != nil {
			return nil, fmt.Errorf("failed to render summary: %w", err)
		}
	}

	r.metrics.FinishRun(report.Elapsed)
	if r.cfg.MetricsFile != "" {
		if err := r.metrics.WriteTextfile(r.cfg.MetricsFile); err != nil {
			return nil, err
		}
	}

	r.logger.Info("run complete",
		logging.Int("pairs", len(pairResults)),
		logging.Latency(report.Elapsed))
	return report, nil
}

// load reads both input tables
func (r *Runner) load() ([]algorithms.RawEdge, algorithms.Labels, error) {
	nodesPath := r.cfg.Resolve(r.cfg.NodesFile)
	timer := logging.StartTimer(r.logger, "nodes loaded", logging.Path(nodesPath))
	nodes, err := dataset.LoadNodes(nodesPath)
	if err != nil {
		timer.EndError(err)
		return nil, nil, fmt.Errorf("failed to load nodes: %w", err)
	}
	r.metrics.RecordLoad(dataset.NodesTable, nodes.Rows, timer.End(logging.Count(nodes.Rows)))
	r.metrics.RecordSkipped(dataset.NodesTable, "duplicate", nodes.Duplicates)
	if nodes.Duplicates > 0 {
		r.logger.Warn("node table names some nodes more than once, first label kept",
			logging.Count(nodes.Duplicates))
	}

	edgesPath := r.cfg.Resolve(r.cfg.EdgesFile)
	timer = logging.StartTimer(r.logger, "edges loaded", logging.Path(edgesPath))
	edges, err := dataset.LoadEdges(edgesPath)
	if err != nil {
		timer.EndError(err)
		return nil, nil, fmt.Errorf("failed to load edges: %w", err)
	}
	r.metrics.RecordLoad(dataset.EdgesTable, edges.Rows, timer.End(
		logging.Count(edges.Rows), logging.Int("duplicates", edges.Duplicates)))
	r.metrics.RecordSkipped(dataset.EdgesTable, "duplicate", edges.Duplicates)

	return edges.Edges, nodes.Labels, nil
}

// writeSinks hands the run to every sink concurrently
func (r *Runner) writeSinks(ctx context.Context, run *results.Run) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, sink := range r.sinks {
		sink := sink
		g.Go(func() error {
			timer := logging.StartTimer(r.logger, "results written", logging.String("sink", sink.Name()))
			err := sink.Write(gctx, run)
			r.metrics.RecordSinkWrite(sink.Name(), err)
			if err != nil {
				timer.EndError(err)
				return fmt.Errorf("sink %s: %w", sink.Name(), err)
			}
			timer.End()
			return nil
		})
	}
	return g.Wait()
}
