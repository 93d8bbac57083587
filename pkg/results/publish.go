package results

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pub"

	// Register all transports
	_ "go.nanomsg.org/mangos/v3/transport/all"
)

// PairTopic prefixes every published pair message so subscribers can filter
var PairTopic = []byte("pair ")

// PairMessage is the JSON body of a published pair result
type PairMessage struct {
	RunID         string   `json:"run_id"`
	CommunityA    int      `json:"community_a"`
	CommunityB    int      `json:"community_b"`
	Polarization  *float64 `json:"polarization"`
	InternalNodes int      `json:"internal_nodes"`
	BoundaryNodes int      `json:"boundary_nodes"`
}

// PubSink publishes one message per pair on a nanomsg pub socket.
// Subscribers that are not connected when the run ends miss the results.
type PubSink struct {
	sock   mangos.Socket
	settle time.Duration
}

// NewPubSink listens on addr (e.g. tcp://0.0.0.0:5555). settle is waited
// before the first send so subscribers can attach.
func NewPubSink(addr string, settle time.Duration) (*PubSink, error) {
	sock, err := pub.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("failed to create pub socket: %w", err)
	}
	if err := sock.Listen(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return &PubSink{sock: sock, settle: settle}, nil
}

// Name implements Sink
func (s *PubSink) Name() string {
	return "publish"
}

// Write implements Sink
func (s *PubSink) Write(ctx context.Context, run *Run) error {
	if s.settle > 0 {
		select {
		case <-time.After(s.settle):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for _, r := range run.Results {
		msg := PairMessage{
			RunID:         run.ID,
			CommunityA:    int(r.Pair.A),
			CommunityB:    int(r.Pair.B),
			InternalNodes: r.InternalNodes,
			BoundaryNodes: r.BoundaryNodes,
		}
		if r.Polarization.Valid {
			v := r.Polarization.Value
			msg.Polarization = &v
		}

		body, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to marshal pair %d-%d: %w", r.Pair.A, r.Pair.B, err)
		}
		if err := s.sock.Send(append(append([]byte{}, PairTopic...), body...)); err != nil {
			return fmt.Errorf("failed to publish pair %d-%d: %w", r.Pair.A, r.Pair.B, err)
		}
	}
	return nil
}

// Close releases the socket
func (s *PubSink) Close() error {
	return s.sock.Close()
}
