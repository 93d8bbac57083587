package results

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGConn is the subset of a pgx pool used by the Postgres sink
type PGConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

var pgColumns = []string{
	"run_id", "community_a", "community_b", "polarization",
	"internal_nodes", "boundary_nodes", "created_at",
}

// PGSink appends the pair table of each run to a Postgres table
type PGSink struct {
	conn  PGConn
	table string
}

// NewPGPool opens a connection pool sized for a one-shot batch writer
func NewPGPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 2
	config.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return pool, nil
}

// NewPGSink creates a sink writing into table. The table name must already
// be validated as an identifier.
func NewPGSink(conn PGConn, table string) *PGSink {
	return &PGSink{conn: conn, table: table}
}

// Name implements Sink
func (s *PGSink) Name() string {
	return "postgres"
}

func (s *PGSink) migrate(ctx context.Context) error {
	ident := pgx.Identifier{s.table}.Sanitize()
	_, err := s.conn.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id         TEXT             NOT NULL,
			community_a    INTEGER          NOT NULL,
			community_b    INTEGER          NOT NULL,
			polarization   DOUBLE PRECISION,
			internal_nodes INTEGER          NOT NULL,
			boundary_nodes INTEGER          NOT NULL,
			created_at     TIMESTAMPTZ      NOT NULL,
			PRIMARY KEY (run_id, community_a, community_b)
		)`, ident))
	return err
}

// Write implements Sink. Missing polarizations are stored as NULL.
func (s *PGSink) Write(ctx context.Context, run *Run) error {
	if err := s.migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	rows := make([][]any, 0, len(run.Results))
	for _, r := range run.Results {
		var p *float64
		if r.Polarization.Valid {
			v := r.Polarization.Value
			p = &v
		}
		rows = append(rows, []any{
			run.ID, int32(r.Pair.A), int32(r.Pair.B), p,
			int32(r.InternalNodes), int32(r.BoundaryNodes), run.StartedAt,
		})
	}

	n, err := s.conn.CopyFrom(ctx, pgx.Identifier{s.table}, pgColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to copy results into %s: %w", s.table, err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("copied %d of %d rows into %s", n, len(rows), s.table)
	}
	return nil
}
