package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/archipelago-gg/apclient/pkg/protocol"
)

// fakeConn plays the server side of the transport from a script of frames.
// Reads past the script return readErr if set, otherwise a close frame.
type fakeConn struct {
	frames  []Frame
	readErr error

	reads   int
	written []Frame
	flushes int
	closed  bool
}

func (f *fakeConn) ReadFrame(ctx context.Context) (Frame, error) {
	f.reads++
	if len(f.frames) == 0 {
		if f.readErr != nil {
			return Frame{}, f.readErr
		}
		return Frame{Kind: FrameClose}, nil
	}
	frame := f.frames[0]
	f.frames = f.frames[1:]
	return frame, nil
}

func (f *fakeConn) WriteFrame(ctx context.Context, frame Frame) error {
	f.written = append(f.written, frame)
	return nil
}

func (f *fakeConn) Flush() error {
	f.flushes++
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func text(payload string) Frame {
	return Frame{Kind: FrameText, Payload: []byte(payload)}
}

func newTestStream(conn Conn) *messageStream[protocol.ServerMessage] {
	return newMessageStream(conn, protocol.DecodeServer, nil, slog.Default(), nil)
}

func TestStreamSingleMessageFrame(t *testing.T) {
	conn := &fakeConn{frames: []Frame{
		text(`[{"cmd":"Bounced","data":{"x":1}}]`),
	}}
	stream := newTestStream(conn)

	msg, err := stream.Next(context.Background())
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if _, ok := msg.(*protocol.Bounced); !ok {
		t.Errorf("message = %T, want *protocol.Bounced", msg)
	}
}

func TestStreamMultiMessageFrameOrdering(t *testing.T) {
	// One frame, three messages: three consecutive calls must yield them
	// in order without polling the transport again.
	conn := &fakeConn{frames: []Frame{
		text(`[
			{"cmd":"PrintJSON","type":"Chat","data":[{"text":"one"}],"team":0,"slot":1,"message":"one"},
			{"cmd":"PrintJSON","type":"Join","data":[{"text":"two"}],"team":0,"slot":2,"tags":[]},
			{"cmd":"ReceivedItems","index":0,"items":[]}
		]`),
	}}
	stream := newTestStream(conn)
	ctx := context.Background()

	first, err := stream.Next(ctx)
	if err != nil {
		t.Fatalf("Next() #1 error = %v", err)
	}
	chat, ok := first.(*protocol.PrintJSON)
	if !ok || chat.Type != protocol.PrintChat {
		t.Fatalf("message #1 = %T %v, want PrintJSON Chat", first, first)
	}

	second, err := stream.Next(ctx)
	if err != nil {
		t.Fatalf("Next() #2 error = %v", err)
	}
	join, ok := second.(*protocol.PrintJSON)
	if !ok || join.Type != protocol.PrintJoin {
		t.Fatalf("message #2 = %T %v, want PrintJSON Join", second, second)
	}

	third, err := stream.Next(ctx)
	if err != nil {
		t.Fatalf("Next() #3 error = %v", err)
	}
	if _, ok := third.(*protocol.ReceivedItems); !ok {
		t.Fatalf("message #3 = %T, want *protocol.ReceivedItems", third)
	}

	if conn.reads != 1 {
		t.Errorf("transport polled %d times, want 1", conn.reads)
	}
}

func TestStreamPingPongIgnored(t *testing.T) {
	conn := &fakeConn{frames: []Frame{
		{Kind: FramePing, Payload: []byte("keepalive")},
		{Kind: FramePong},
		text(`[{"cmd":"RoomUpdate"}]`),
	}}
	stream := newTestStream(conn)

	msg, err := stream.Next(context.Background())
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if _, ok := msg.(*protocol.RoomUpdate); !ok {
		t.Errorf("message = %T, want *protocol.RoomUpdate", msg)
	}
	if conn.reads != 3 {
		t.Errorf("transport polled %d times, want 3", conn.reads)
	}
}

func TestStreamCloseFrameEndsSequence(t *testing.T) {
	conn := &fakeConn{frames: []Frame{
		{Kind: FrameClose, Payload: []byte("room closed")},
	}}
	stream := newTestStream(conn)

	_, err := stream.Next(context.Background())
	if !errors.Is(err, io.EOF) {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
}

func TestStreamBinaryFrame(t *testing.T) {
	conn := &fakeConn{frames: []Frame{
		{Kind: FrameBinary, Payload: []byte{0x01, 0x02}},
	}}
	stream := newTestStream(conn)

	_, err := stream.Next(context.Background())

	var unexpected *UnexpectedFrameError
	if !errors.As(err, &unexpected) {
		t.Fatalf("Next() error = %v, want *UnexpectedFrameError", err)
	}
	if unexpected.Kind != FrameBinary {
		t.Errorf("Kind = %v, want FrameBinary", unexpected.Kind)
	}
}

func TestStreamMalformedJSON(t *testing.T) {
	conn := &fakeConn{frames: []Frame{
		text(`[{"cmd":`),
	}}
	stream := newTestStream(conn)

	_, err := stream.Next(context.Background())

	var parse *ParseError
	if !errors.As(err, &parse) {
		t.Errorf("Next() error = %v, want *ParseError", err)
	}
}

func TestStreamNonArrayEnvelope(t *testing.T) {
	conn := &fakeConn{frames: []Frame{
		text(`{"cmd":"RoomUpdate"}`),
	}}
	stream := newTestStream(conn)

	_, err := stream.Next(context.Background())

	var parse *ParseError
	if !errors.As(err, &parse) {
		t.Fatalf("Next() error = %v, want *ParseError", err)
	}
	if !errors.Is(err, protocol.ErrNotArray) {
		t.Errorf("error does not wrap ErrNotArray: %v", err)
	}
}

func TestStreamEmptyArrayYieldsNothing(t *testing.T) {
	// An empty envelope produces no message; the stream moves on to the
	// next frame.
	conn := &fakeConn{frames: []Frame{
		text(`[]`),
		text(`[{"cmd":"RoomUpdate"}]`),
	}}
	stream := newTestStream(conn)

	msg, err := stream.Next(context.Background())
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if _, ok := msg.(*protocol.RoomUpdate); !ok {
		t.Errorf("message = %T, want *protocol.RoomUpdate", msg)
	}
	if conn.reads != 2 {
		t.Errorf("transport polled %d times, want 2", conn.reads)
	}
}

func TestStreamTransportError(t *testing.T) {
	cause := errors.New("connection reset")
	conn := &fakeConn{readErr: cause}
	stream := newTestStream(conn)

	_, err := stream.Next(context.Background())

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("Next() error = %v, want *TransportError", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error does not wrap the cause: %v", err)
	}
}

func TestStreamResidualDecodeErrorReported(t *testing.T) {
	// A buffered element that fails to decode is reported in its
	// position, not skipped; the stream then continues with the next
	// element.
	conn := &fakeConn{frames: []Frame{
		text(`[{"cmd":"RoomUpdate"},{"cmd":"NoSuchThing"},{"cmd":"Bounced"}]`),
	}}
	stream := newTestStream(conn)
	ctx := context.Background()

	if _, err := stream.Next(ctx); err != nil {
		t.Fatalf("Next() #1 error = %v", err)
	}

	_, err := stream.Next(ctx)
	var parse *ParseError
	if !errors.As(err, &parse) {
		t.Fatalf("Next() #2 error = %v, want *ParseError", err)
	}

	msg, err := stream.Next(ctx)
	if err != nil {
		t.Fatalf("Next() #3 error = %v", err)
	}
	if _, ok := msg.(*protocol.Bounced); !ok {
		t.Errorf("message #3 = %T, want *protocol.Bounced", msg)
	}

	if conn.reads != 1 {
		t.Errorf("transport polled %d times, want 1", conn.reads)
	}
}

func TestStreamOrderAcrossFrames(t *testing.T) {
	conn := &fakeConn{frames: []Frame{
		text(`[{"cmd":"ReceivedItems","index":0,"items":[]},{"cmd":"ReceivedItems","index":1,"items":[]}]`),
		text(`[{"cmd":"ReceivedItems","index":2,"items":[]}]`),
	}}
	stream := newTestStream(conn)
	ctx := context.Background()

	for want := int64(0); want < 3; want++ {
		msg, err := stream.Next(ctx)
		if err != nil {
			t.Fatalf("Next() #%d error = %v", want, err)
		}
		received, ok := msg.(*protocol.ReceivedItems)
		if !ok {
			t.Fatalf("message #%d = %T", want, msg)
		}
		if received.Index != want {
			t.Errorf("message #%d: Index = %d", want, received.Index)
		}
	}
}
