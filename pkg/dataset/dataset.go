// Package dataset reads the node and edge tables of an interaction graph.
//
// Both tables are CSV files with a header row. The node table holds
// (name, group) rows assigning each node to a community; the edge table
// holds (source, target) rows. Columns are positional, header names are
// not interpreted.
package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-polarization/pkg/algorithms"
)

// Table names used in errors and metrics
const (
	NodesTable = "nodes"
	EdgesTable = "edges"
)

// Default file names inside a data directory
const (
	DefaultNodesFile = "nodes.csv"
	DefaultEdgesFile = "edges.csv"
)

// NodeTable is the parsed node table
type NodeTable struct {
	Labels     algorithms.Labels
	Rows       int
	Duplicates int // Rows naming a node already seen; the first label wins
}

// EdgeTable is the parsed edge table
type EdgeTable struct {
	Edges      []algorithms.RawEdge
	Rows       int
	Duplicates int // Rows repeating an edge in either direction
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true
	return reader
}

// readHeader consumes the header row
func readHeader(reader *csv.Reader, table, name string) error {
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return NewError("read", table).File(name).Cause(ErrEmptyFile).Err()
		}
		return NewError("read", table).File(name).Line(1).Cause(err).Err()
	}
	return nil
}

// ReadNodes parses a node table. name is only used in errors.
func ReadNodes(r io.Reader, name string) (*NodeTable, error) {
	reader := newReader(r)
	if err := readHeader(reader, NodesTable, name); err != nil {
		return nil, err
	}

	out := &NodeTable{Labels: make(algorithms.Labels)}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, NewError("read", NodesTable).File(name).Cause(err).Err()
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 2 {
			return nil, NewError("parse", NodesTable).File(name).Line(line).Column("group").Cause(ErrMissingColumn).Err()
		}

		node := strings.TrimSpace(record[0])
		if node == "" {
			return nil, NewError("parse", NodesTable).File(name).Line(line).Column("name").Cause(ErrEmptyIdentifier).Err()
		}
		group, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, NewError("parse", NodesTable).File(name).Line(line).Column("group").
				Cause(errors.Join(ErrInvalidCommunity, err)).Err()
		}

		out.Rows++
		id := algorithms.NodeID(node)
		if _, seen := out.Labels[id]; seen {
			out.Duplicates++
			continue
		}
		out.Labels[id] = algorithms.CommunityID(group)
	}
	return out, nil
}

// ReadEdges parses an edge table, removing duplicate edges. Edges are
// unordered, so (a,b) and (b,a) are duplicates; the first occurrence is
// kept in file order.
func ReadEdges(r io.Reader, name string) (*EdgeTable, error) {
	reader := newReader(r)
	if err := readHeader(reader, EdgesTable, name); err != nil {
		return nil, err
	}

	out := &EdgeTable{Edges: make([]algorithms.RawEdge, 0)}
	seen := make(map[algorithms.RawEdge]struct{})
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, NewError("read", EdgesTable).File(name).Cause(err).Err()
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 2 {
			return nil, NewError("parse", EdgesTable).File(name).Line(line).Column("target").Cause(ErrMissingColumn).Err()
		}

		src, dst := strings.TrimSpace(record[0]), strings.TrimSpace(record[1])
		if src == "" || dst == "" {
			return nil, NewError("parse", EdgesTable).File(name).Line(line).Cause(ErrEmptyIdentifier).Err()
		}

		out.Rows++
		edge := algorithms.RawEdge{Source: algorithms.NodeID(src), Target: algorithms.NodeID(dst)}
		key := edge
		if key.Target < key.Source {
			key.Source, key.Target = key.Target, key.Source
		}
		if _, dup := seen[key]; dup {
			out.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		out.Edges = append(out.Edges, edge)
	}
	return out, nil
}

// openMapped memory-maps a file for sequential CSV reading
func openMapped(path, table string) (io.Reader, io.Closer, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, nil, NewError("open", table).File(path).Cause(err).Err()
	}
	return io.NewSectionReader(m, 0, int64(m.Len())), m, nil
}

// LoadNodes reads the node table at path
func LoadNodes(path string) (*NodeTable, error) {
	r, closer, err := openMapped(path, NodesTable)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return ReadNodes(r, filepath.Base(path))
}

// LoadEdges reads the edge table at path
func LoadEdges(path string) (*EdgeTable, error) {
	r, closer, err := openMapped(path, EdgesTable)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return ReadEdges(r, filepath.Base(path))
}
