package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dd0wney/cluso-polarization/pkg/config"
	"github.com/dd0wney/cluso-polarization/pkg/results"
)

// PublishSettle is how long the pub socket waits for subscribers before sending
const PublishSettle = 500 * time.Millisecond

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// BuildSinks opens every sink the configuration asks for. The returned
// closer releases pools and sockets and must be called after the run.
func BuildSinks(ctx context.Context, cfg *config.Config) ([]results.Sink, io.Closer, error) {
	var (
		sinks   []results.Sink
		closers []func() error
	)
	closeAll := closerFunc(func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	sinks = append(sinks, results.NewPairFileSink(cfg.Resolve(cfg.OutputFile), cfg.Compress))
	if cfg.NodeScoresFile != "" {
		sinks = append(sinks, results.NewNodeScoreFileSink(cfg.Resolve(cfg.NodeScoresFile), cfg.Compress))
	}

	if cfg.S3 != nil {
		client, err := results.NewS3Client(ctx, cfg.S3.Region)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		sinks = append(sinks, results.NewS3Sink(client, cfg.S3.Bucket, cfg.S3.Prefix, cfg.Compress))
	}

	if cfg.Postgres != nil {
		pool, err := results.NewPGPool(ctx, cfg.Postgres.DSN)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, func() error { pool.Close(); return nil })
		sinks = append(sinks, results.NewPGSink(pool, cfg.Postgres.Table))
	}

	if cfg.Publish != nil {
		pub, err := results.NewPubSink(cfg.Publish.Address, PublishSettle)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to open publisher: %w", err)
		}
		closers = append(closers, pub.Close)
		sinks = append(sinks, pub)
	}

	return sinks, closeAll, nil
}
