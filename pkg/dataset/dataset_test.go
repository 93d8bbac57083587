package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-polarization/pkg/algorithms"
)

func TestReadNodes(t *testing.T) {
	input := "Id,Modularity Class\n1,0\n2, 0\n3,1\n2,5\n"

	table, err := ReadNodes(strings.NewReader(input), "nodes.csv")
	require.NoError(t, err)

	assert.Equal(t, algorithms.Labels{"1": 0, "2": 0, "3": 1}, table.Labels)
	assert.Equal(t, 4, table.Rows)
	assert.Equal(t, 1, table.Duplicates, "repeated node keeps its first label")
}

func TestReadNodes_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
		line   int
	}{
		{"empty file", "", ErrEmptyFile, 0},
		{"missing group", "name,group\na,1\nb\n", ErrMissingColumn, 3},
		{"non integer group", "name,group\na,left\n", ErrInvalidCommunity, 2},
		{"empty name", "name,group\n ,1\n", ErrEmptyIdentifier, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadNodes(strings.NewReader(tt.input), "nodes.csv")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, NodesTable, loadErr.Table)
			assert.Equal(t, tt.line, loadErr.Line)
		})
	}
}

func TestReadEdges_Deduplicates(t *testing.T) {
	input := "Source,Target\na,b\nb,c\na,b\nb,a\nc,c\n"

	table, err := ReadEdges(strings.NewReader(input), "edges.csv")
	require.NoError(t, err)

	want := []algorithms.RawEdge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}, {Source: "c", Target: "c"}}
	assert.Equal(t, want, table.Edges)
	assert.Equal(t, 5, table.Rows)
	assert.Equal(t, 2, table.Duplicates)
}

func TestReadEdges_Errors(t *testing.T) {
	_, err := ReadEdges(strings.NewReader("source,target\na\n"), "edges.csv")
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.True(t, IsMalformed(err))
	assert.Contains(t, err.Error(), "edges.csv:2")

	_, err = ReadEdges(strings.NewReader("source,target\n\"a,b\n"), "edges.csv")
	require.Error(t, err)
	assert.False(t, IsMalformed(err))
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultNodesFile), []byte("name,group\nx,1\ny,2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultEdgesFile), []byte("source,target\nx,y\n"), 0o644))

	nodes, err := LoadNodes(filepath.Join(dir, DefaultNodesFile))
	require.NoError(t, err)
	assert.Len(t, nodes.Labels, 2)

	edges, err := LoadEdges(filepath.Join(dir, DefaultEdgesFile))
	require.NoError(t, err)
	assert.Equal(t, []algorithms.RawEdge{{Source: "x", Target: "y"}}, edges.Edges)
}

func TestLoadFromDisk_EmptyAndMissing(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	_, err := LoadNodes(empty)
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = LoadEdges(filepath.Join(dir, "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "open edges")
}

func TestLoadError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "with line and column",
			err:      NewError("parse", NodesTable).File("nodes.csv").Line(7).Column("group").Cause(ErrInvalidCommunity).Err(),
			expected: "parse nodes nodes.csv:7 (column group): community label is not an integer",
		},
		{
			name:     "file only",
			err:      NewError("open", EdgesTable).File("edges.csv").Cause(errors.New("permission denied")).Err(),
			expected: "open edges edges.csv: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}
