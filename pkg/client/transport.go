package client

import (
	"context"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultPort is used when the endpoint string names no port.
const DefaultPort = "38281"

// FrameKind identifies the kind of a transport frame.
type FrameKind int

const (
	FrameText FrameKind = iota + 1
	FrameBinary
	FramePing
	FramePong
	FrameClose
)

// String returns the string representation of the frame kind.
func (k FrameKind) String() string {
	switch k {
	case FrameText:
		return "text"
	case FrameBinary:
		return "binary"
	case FramePing:
		return "ping"
	case FramePong:
		return "pong"
	case FrameClose:
		return "close"
	default:
		return "unknown"
	}
}

// Frame is one discrete unit of transport transmission.
type Frame struct {
	Kind    FrameKind
	Payload []byte
}

// Conn is the duplex frame transport under a session. It is assumed
// reliable and ordered; a failed connection surfaces as an error from
// ReadFrame or WriteFrame.
type Conn interface {
	// ReadFrame blocks until the next frame arrives. A received close
	// frame is returned as a Frame, not an error.
	ReadFrame(ctx context.Context) (Frame, error)

	// WriteFrame submits one frame.
	WriteFrame(ctx context.Context, f Frame) error

	// Flush guarantees queued frames are physically written.
	Flush() error

	// Close releases the underlying connection.
	Close() error
}

// endpointURL resolves an endpoint string to the WebSocket URL to dial.
// The string is split on its last colon into host and optional port; a
// missing port falls back to DefaultPort.
func endpointURL(endpoint string) string {
	host, port := endpoint, DefaultPort
	if i := strings.LastIndex(endpoint, ":"); i >= 0 {
		host, port = endpoint[:i], endpoint[i+1:]
	}
	return "ws://" + host + ":" + port
}

// wsConn adapts a gorilla WebSocket connection to the Conn interface.
//
// Gorilla answers pings itself and never returns control frames from
// ReadMessage, so ping/pong handlers record the frames into a small queue
// that ReadFrame drains before polling the socket again. A close handshake
// surfaces as a FrameClose frame rather than an error.
type wsConn struct {
	conn    *websocket.Conn
	control chan Frame
}

func newWSConn(conn *websocket.Conn) *wsConn {
	w := &wsConn{
		conn:    conn,
		control: make(chan Frame, 8),
	}

	// Keep gorilla's automatic pong reply, but surface the frame.
	ping := conn.PingHandler()
	conn.SetPingHandler(func(data string) error {
		w.record(Frame{Kind: FramePing, Payload: []byte(data)})
		return ping(data)
	})
	conn.SetPongHandler(func(data string) error {
		w.record(Frame{Kind: FramePong, Payload: []byte(data)})
		return nil
	})

	return w
}

// record queues an observed control frame, dropping it if the queue is
// full. Control frames carry no protocol meaning for us.
func (w *wsConn) record(f Frame) {
	select {
	case w.control <- f:
	default:
	}
}

func (w *wsConn) ReadFrame(ctx context.Context) (Frame, error) {
	select {
	case f := <-w.control:
		return f, nil
	default:
	}

	if deadline, ok := ctx.Deadline(); ok {
		w.conn.SetReadDeadline(deadline)
	} else {
		w.conn.SetReadDeadline(time.Time{})
	}

	// A deadline alone does not cover cancellation: expire the pending
	// read when the context is canceled so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			w.conn.SetReadDeadline(time.Now())
		case <-done:
		}
	}()

	messageType, data, err := w.conn.ReadMessage()
	if err != nil {
		if ctx.Err() != nil {
			return Frame{}, ctx.Err()
		}
		if closeErr, ok := err.(*websocket.CloseError); ok {
			return Frame{Kind: FrameClose, Payload: []byte(closeErr.Text)}, nil
		}
		return Frame{}, err
	}

	switch messageType {
	case websocket.TextMessage:
		return Frame{Kind: FrameText, Payload: data}, nil
	case websocket.BinaryMessage:
		return Frame{Kind: FrameBinary, Payload: data}, nil
	default:
		return Frame{Kind: FrameBinary, Payload: data}, nil
	}
}

func (w *wsConn) WriteFrame(ctx context.Context, f Frame) error {
	if deadline, ok := ctx.Deadline(); ok {
		w.conn.SetWriteDeadline(deadline)
	} else {
		w.conn.SetWriteDeadline(time.Time{})
	}

	switch f.Kind {
	case FrameText:
		return w.conn.WriteMessage(websocket.TextMessage, f.Payload)
	case FrameBinary:
		return w.conn.WriteMessage(websocket.BinaryMessage, f.Payload)
	case FramePing:
		return w.conn.WriteControl(websocket.PingMessage, f.Payload, deadlineOr(ctx, time.Second))
	case FramePong:
		return w.conn.WriteControl(websocket.PongMessage, f.Payload, deadlineOr(ctx, time.Second))
	case FrameClose:
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(f.Payload))
		return w.conn.WriteControl(websocket.CloseMessage, msg, deadlineOr(ctx, time.Second))
	default:
		return w.conn.WriteMessage(websocket.TextMessage, f.Payload)
	}
}

// Flush is a no-op: gorilla writes each message in full.
func (w *wsConn) Flush() error { return nil }

func (w *wsConn) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return w.conn.Close()
}

func deadlineOr(ctx context.Context, fallback time.Duration) time.Time {
	if deadline, ok := ctx.Deadline(); ok {
		return deadline
	}
	return time.Now().Add(fallback)
}
