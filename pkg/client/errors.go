package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/archipelago-gg/apclient/pkg/protocol"
)

// Sentinel errors.
var (
	// ErrStreamEnded reports that the connection closed while a required
	// reply was outstanding. It is distinct from io.EOF, which Next
	// returns for a clean end of the message sequence.
	ErrStreamEnded = errors.New("apclient: stream ended unexpectedly")

	// ErrClientConsumed reports use of an AnonymousClient after Login has
	// taken ownership of the connection.
	ErrClientConsumed = errors.New("apclient: anonymous client already consumed")
)

// ParseError reports a payload that could not be decoded into the expected
// message family: malformed JSON, a bad envelope, a missing or unknown
// discriminator, or a shape mismatch.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "apclient: failed to parse message from server: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransportError wraps a failure of the underlying connection.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "apclient: transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedFrameError reports a frame kind received where a protocol
// message was expected, e.g. a binary frame.
type UnexpectedFrameError struct {
	Kind FrameKind
}

func (e *UnexpectedFrameError) Error() string {
	return fmt.Sprintf("apclient: unexpected %s frame from server", e.Kind)
}

// SequenceError reports a well-formed message that is not the one expected
// at this point of the handshake.
type SequenceError struct {
	// Want is the discriminator of the expected message.
	Want string

	// Got is the message actually received, kept for diagnostics.
	Got protocol.Message
}

func (e *SequenceError) Error() string {
	if invalid, ok := e.Got.(*protocol.InvalidPacket); ok {
		return fmt.Sprintf("apclient: expected %s, got InvalidPacket (%s): %s",
			e.Want, invalid.Type, invalid.Text)
	}
	return fmt.Sprintf("apclient: expected %s, got %s", e.Want, e.Got.Cmd())
}

// RefusedError reports that the server refused authentication, carrying
// the structured refusal reasons.
type RefusedError struct {
	Errors []protocol.ConnectionRefusedError
}

func (e *RefusedError) Error() string {
	if len(e.Errors) == 0 {
		return "apclient: connection refused"
	}
	reasons := make([]string, len(e.Errors))
	for i, reason := range e.Errors {
		reasons[i] = string(reason)
	}
	return "apclient: connection refused: " + strings.Join(reasons, ", ")
}
