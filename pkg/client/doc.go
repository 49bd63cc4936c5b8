// Package client implements one client's view of an Archipelago session:
// the transport framing, the inbound message demultiplexer, the outbound
// encoder, and the handshake state machine.
//
// # Session Lifecycle
//
// A session moves through two typed phases:
//
//	Dial ──> *AnonymousClient ──Login──> *Client
//
// Dial opens the WebSocket connection and consumes the mandatory RoomInfo
// announcement; the resulting AnonymousClient can fetch the data package
// and authenticate. Login consumes the AnonymousClient: on success it
// returns a *Client that owns the RoomInfo, the Connected identity
// snapshot, and any messages still buffered from multi-message frames, so
// nothing is lost across the transition. After Login the AnonymousClient is
// spent regardless of outcome; further calls return ErrClientConsumed.
//
// # Demultiplexing
//
// The server may pack several protocol messages into a single WebSocket
// frame. The stream layer splits each frame's JSON array envelope and hands
// out one decoded message per call, in exact arrival order, buffering the
// remainder; the transport is only polled again once the buffer drains.
// Ping and pong frames are consumed silently, a close frame ends the
// sequence cleanly (io.EOF), and any other frame kind is an
// UnexpectedFrameError.
//
// # Concurrency
//
// A session is a single-owner sequential pipe. Next and the send methods
// suspend on transport I/O; no two operations on the same session may run
// concurrently. The two directions are independent of each other. No
// internal timeout is imposed; callers bound latency with the context they
// pass in.
package client
