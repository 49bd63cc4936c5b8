package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/archipelago-gg/apclient/pkg/protocol"
)

// messageStream turns transport frames into an ordered sequence of decoded
// messages of one family. A single frame may carry several messages; the
// leftovers wait in pending, undecoded, until consumed. The generic
// parameter fixes the decode target; wire handling is identical for both
// families.
type messageStream[M protocol.Message] struct {
	conn    Conn
	decode  func(json.RawMessage) (M, error)
	pending []json.RawMessage
	logger  *slog.Logger
	metrics *Metrics
}

func newMessageStream[M protocol.Message](conn Conn, decode func(json.RawMessage) (M, error), pending []json.RawMessage, logger *slog.Logger, metrics *Metrics) *messageStream[M] {
	return &messageStream[M]{
		conn:    conn,
		decode:  decode,
		pending: pending,
		logger:  logger,
		metrics: metrics,
	}
}

// Next yields the next message in arrival order. The pending buffer is
// drained before the transport is polled again, so a frame carrying N
// messages produces exactly N consecutive results. Ping and pong frames
// are consumed silently. A close frame ends the sequence with io.EOF; no
// further polling occurs after that.
//
// A pending element that fails to decode is reported as a ParseError for
// its position, not skipped.
func (s *messageStream[M]) Next(ctx context.Context) (M, error) {
	var zero M

	for {
		if len(s.pending) > 0 {
			raw := s.pending[0]
			s.pending = s.pending[1:]
			return s.decodeElement(raw)
		}

		frame, err := s.conn.ReadFrame(ctx)
		if err != nil {
			s.metrics.recordTransportError()
			return zero, &TransportError{Err: err}
		}
		s.metrics.recordFrame(frame.Kind, len(frame.Payload))

		switch frame.Kind {
		case FrameText:
			elems, err := protocol.SplitEnvelope(frame.Payload)
			if err != nil {
				s.metrics.recordParseError()
				return zero, &ParseError{Err: err}
			}
			if len(elems) == 0 {
				continue
			}
			s.pending = append(s.pending, elems[1:]...)
			return s.decodeElement(elems[0])

		case FramePing, FramePong:
			// Answered by the transport layer; nothing to deliver.
			continue

		case FrameClose:
			s.logger.Debug("server closed the connection")
			return zero, io.EOF

		default:
			return zero, &UnexpectedFrameError{Kind: frame.Kind}
		}
	}
}

func (s *messageStream[M]) decodeElement(raw json.RawMessage) (M, error) {
	msg, err := s.decode(raw)
	if err != nil {
		s.metrics.recordParseError()
		var zero M
		return zero, &ParseError{Err: err}
	}
	s.logger.Debug("received message", "cmd", msg.Cmd())
	s.metrics.recordReceived(msg.Cmd())
	return msg, nil
}

// residual hands back the undecoded leftovers so they can move to the next
// session stage without resetting the ordering.
func (s *messageStream[M]) residual() []json.RawMessage {
	return s.pending
}
