package results

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-polarization/pkg/algorithms"
)

// SnappyExt is appended to file names written compressed
const SnappyExt = ".sz"

// Encoder renders run results into a stream
type Encoder func(w io.Writer, results []*algorithms.PairResult) error

// FileSink writes a CSV table to a local file. The file is written to a
// temporary name and renamed into place so readers never see a partial
// table.
type FileSink struct {
	name     string
	path     string
	compress bool
	encode   Encoder
}

// NewPairFileSink writes the pair table to path
func NewPairFileSink(path string, compress bool) *FileSink {
	return newFileSink("csv", path, compress, EncodePairs)
}

// NewNodeScoreFileSink writes the per-node score table to path
func NewNodeScoreFileSink(path string, compress bool) *FileSink {
	return newFileSink("node_scores", path, compress, EncodeNodeScores)
}

func newFileSink(name, path string, compress bool, encode Encoder) *FileSink {
	if compress {
		path += SnappyExt
	}
	return &FileSink{name: name, path: path, compress: compress, encode: encode}
}

// Name implements Sink
func (s *FileSink) Name() string {
	return s.name
}

// Path returns the final location of the file
func (s *FileSink) Path() string {
	return s.path
}

// Write implements Sink
func (s *FileSink) Write(_ context.Context, run *Run) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := writeEncoded(tmp, s.compress, run.Results, s.encode); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", s.path, err)
	}
	return nil
}

// writeEncoded encodes results into w, through the snappy framing format
// when compress is set
func writeEncoded(w io.Writer, compress bool, results []*algorithms.PairResult, encode Encoder) error {
	if compress {
		sw := snappy.NewBufferedWriter(w)
		if err := encode(sw, results); err != nil {
			return err
		}
		return sw.Close()
	}

	bw := bufio.NewWriter(w)
	if err := encode(bw, results); err != nil {
		return err
	}
	return bw.Flush()
}
