package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-polarization/pkg/algorithms"
	"github.com/dd0wney/cluso-polarization/pkg/config"
	"github.com/dd0wney/cluso-polarization/pkg/logging"
	"github.com/dd0wney/cluso-polarization/pkg/metrics"
	"github.com/dd0wney/cluso-polarization/pkg/results"
)

// writeDataset lays out the chain 1-2-3-4 (communities 1 and 2) plus an
// isolated pair 5-6 in community 3
func writeDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	nodes := "name,group\n1,1\n2,1\n3,2\n4,2\n5,3\n6,3\n"
	edges := "source,target\n1,2\n2,3\n3,4\n5,6\n2,1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nodes.csv"), []byte(nodes), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "edges.csv"), []byte(edges), 0o644))
	return dir
}

func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.DataDir = dir
	cfg.Communities = []int{1, 2, 3}
	cfg.Workers = 2
	return cfg
}

func TestRun_EndToEnd(t *testing.T) {
	dir := writeDataset(t)
	cfg := testConfig(dir)
	cfg.RenderTable = true
	cfg.MetricsFile = filepath.Join(dir, "polarization.prom")

	sinks, closer, err := BuildSinks(context.Background(), cfg)
	require.NoError(t, err)
	defer closer.Close()
	require.Len(t, sinks, 1)

	var console bytes.Buffer
	r := New(cfg, logging.NewNopLogger(), metrics.NewRegistry(),
		WithSinks(sinks...), WithConsole(&console), WithRunID("run-1"))

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run-1", report.RunID)
	require.Len(t, report.Results, 3)

	data, err := os.ReadFile(filepath.Join(dir, config.DefaultOutputFile))
	require.NoError(t, err)
	assert.Equal(t, "community_a,community_b,polarization\n1,2,0\n1,3,\n2,3,\n", string(data))

	assert.Len(t, report.Graph.Labels, 6)
	assert.Len(t, report.Graph.Edges, 4)
	assert.Contains(t, console.String(), "n/a")

	prom, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "polarization_pairs_total")
}

func TestRun_SizeFilter(t *testing.T) {
	dir := writeDataset(t)
	cfg := testConfig(dir)
	cfg.Communities = nil

	r := New(cfg, logging.NewNopLogger(), nil)
	report, err := r.Run(context.Background())
	require.NoError(t, err)

	// Every community holds a third of the nodes, so all three survive
	assert.Equal(t, []algorithms.CommunityID{1, 2, 3}, report.Graph.Communities())
	require.Len(t, report.Results, 3)
	assert.True(t, report.Results[0].Polarization.Valid)
	assert.False(t, report.Results[1].Polarization.Valid)
}

func TestRun_NodeScoresFile(t *testing.T) {
	dir := writeDataset(t)
	cfg := testConfig(dir)
	cfg.NodeScoresFile = "nodes_polarization.csv"

	sinks, closer, err := BuildSinks(context.Background(), cfg)
	require.NoError(t, err)
	defer closer.Close()
	require.Len(t, sinks, 2)

	_, err = New(cfg, logging.NewNopLogger(), nil, WithSinks(sinks...)).Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "nodes_polarization.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"community_a,community_b,node,polarization",
		"1,2,2,0",
		"1,2,3,0",
	}, lines)
}

func TestRun_MissingInput(t *testing.T) {
	cfg := testConfig(t.TempDir())

	_, err := New(cfg, logging.NewNopLogger(), nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load nodes")
}

type failingSink struct{}

func (failingSink) Name() string { return "broken" }

func (failingSink) Write(context.Context, *results.Run) error {
	return errors.New("disk full")
}

func TestRun_SinkFailure(t *testing.T) {
	cfg := testConfig(writeDataset(t))

	_, err := New(cfg, logging.NewNopLogger(), nil, WithSinks(failingSink{})).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink broken: disk full")
}

func TestRun_Cancelled(t *testing.T) {
	cfg := testConfig(writeDataset(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(cfg, logging.NewNopLogger(), nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_GeneratesRunID(t *testing.T) {
	a := New(config.Default(), logging.NewNopLogger(), nil)
	b := New(config.Default(), logging.NewNopLogger(), nil)
	assert.NotEmpty(t, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())
}
