package client

import (
	"context"
	"log/slog"

	"github.com/archipelago-gg/apclient/pkg/protocol"
)

// messageSink encodes outgoing messages into the wire envelope and submits
// each one as its own text frame. The wire format could carry several
// messages per frame; the sink never batches.
type messageSink struct {
	conn    Conn
	logger  *slog.Logger
	metrics *Metrics
}

func newMessageSink(conn Conn, logger *slog.Logger, metrics *Metrics) *messageSink {
	return &messageSink{conn: conn, logger: logger, metrics: metrics}
}

// Send wraps msg in a one-element array envelope and writes it as a single
// text frame.
func (s *messageSink) Send(ctx context.Context, msg protocol.ClientMessage) error {
	data, err := protocol.Marshal(msg)
	if err != nil {
		return err
	}

	s.logger.Debug("sending message", "cmd", msg.Cmd(), "bytes", len(data))

	if err := s.conn.WriteFrame(ctx, Frame{Kind: FrameText, Payload: data}); err != nil {
		s.metrics.recordTransportError()
		return &TransportError{Err: err}
	}
	s.metrics.recordSent(msg.Cmd(), len(data))
	return nil
}

// Flush forwards to the transport's flush.
func (s *messageSink) Flush() error {
	return s.conn.Flush()
}
