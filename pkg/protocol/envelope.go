package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Envelope errors.
var (
	ErrNotArray   = errors.New("protocol: envelope root is not a JSON array")
	ErrMissingCmd = errors.New("protocol: message has no cmd discriminator")
)

// UnknownCmdError reports a discriminator that matches no variant of the
// expected message family.
type UnknownCmdError struct {
	Cmd    string
	Family string
}

func (e *UnknownCmdError) Error() string {
	return fmt.Sprintf("protocol: unknown %s cmd %q", e.Family, e.Cmd)
}

// Marshal wraps a single message in the one-element array envelope the wire
// format requires. The discriminator is injected from msg.Cmd().
func Marshal(msg Message) ([]byte, error) {
	elem, err := MarshalMessage(msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal([]json.RawMessage{elem})
}

// MarshalMessage serializes one message to its envelope element: the
// message's own fields plus the cmd discriminator.
func MarshalMessage(msg Message) (json.RawMessage, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode %s: %w", msg.Cmd(), err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("protocol: encode %s: %w", msg.Cmd(), err)
	}

	cmd, err := json.Marshal(msg.Cmd())
	if err != nil {
		return nil, err
	}
	fields["cmd"] = cmd

	return json.Marshal(fields)
}

// SplitEnvelope parses a wire frame into its ordered raw elements. The root
// must be a JSON array; its elements are returned undecoded so the caller
// can buffer them and commit to per-message decode errors one at a time.
func SplitEnvelope(data []byte) ([]json.RawMessage, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotArray
		}
		return nil, err
	}
	// Unmarshal treats a null root as a no-op for slices; only a real
	// array produces a non-nil result.
	if elems == nil {
		return nil, ErrNotArray
	}
	return elems, nil
}

// cmdOf extracts the discriminator from a raw envelope element without
// decoding the rest of the payload.
func cmdOf(raw json.RawMessage) (string, error) {
	cmd := gjson.GetBytes(raw, "cmd")
	if !cmd.Exists() || cmd.Type != gjson.String {
		return "", ErrMissingCmd
	}
	return cmd.String(), nil
}

// DecodeServer decodes one envelope element into the full server message
// family. Fails with ErrMissingCmd or UnknownCmdError when the
// discriminator is absent or names no variant of the family.
func DecodeServer(raw json.RawMessage) (ServerMessage, error) {
	cmd, err := cmdOf(raw)
	if err != nil {
		return nil, err
	}

	var msg ServerMessage
	switch cmd {
	case "ReceivedItems":
		msg = &ReceivedItems{}
	case "LocationInfo":
		msg = &LocationInfo{}
	case "RoomUpdate":
		msg = &RoomUpdate{}
	case "PrintJSON":
		msg = &PrintJSON{}
	case "Bounced":
		msg = &Bounced{}
	case "Retrieved":
		msg = &Retrieved{}
	case "SetReply":
		msg = &SetReply{}
	case "InvalidPacket":
		msg = &InvalidPacket{}
	default:
		return nil, &UnknownCmdError{Cmd: cmd, Family: "server message"}
	}

	if err := json.Unmarshal(raw, msg); err != nil {
		return nil, fmt.Errorf("protocol: decode %s: %w", cmd, err)
	}
	return msg, nil
}

// DecodeAnonymousServer decodes one envelope element into the
// pre-authentication server message family.
func DecodeAnonymousServer(raw json.RawMessage) (AnonymousServerMessage, error) {
	cmd, err := cmdOf(raw)
	if err != nil {
		return nil, err
	}

	var msg AnonymousServerMessage
	switch cmd {
	case "RoomInfo":
		msg = &RoomInfo{}
	case "ConnectionRefused":
		msg = &ConnectionRefused{}
	case "Connected":
		msg = &Connected{}
	case "DataPackage":
		msg = &DataPackage{}
	case "InvalidPacket":
		msg = &InvalidPacket{}
	default:
		return nil, &UnknownCmdError{Cmd: cmd, Family: "anonymous server message"}
	}

	if err := json.Unmarshal(raw, msg); err != nil {
		return nil, fmt.Errorf("protocol: decode %s: %w", cmd, err)
	}
	return msg, nil
}

// DecodeClient decodes one envelope element into the client message family.
// The client never receives these itself; the decoder exists for servers
// and tests exercising both directions.
func DecodeClient(raw json.RawMessage) (ClientMessage, error) {
	cmd, err := cmdOf(raw)
	if err != nil {
		return nil, err
	}

	var msg ClientMessage
	switch cmd {
	case "Connect":
		msg = &Connect{}
	case "ConnectUpdate":
		msg = &ConnectUpdate{}
	case "Sync":
		msg = &Sync{}
	case "LocationChecks":
		msg = &LocationChecks{}
	case "LocationScouts":
		msg = &LocationScouts{}
	case "StatusUpdate":
		msg = &StatusUpdate{}
	case "Say":
		msg = &Say{}
	case "GetDataPackage":
		msg = &GetDataPackage{}
	case "Bounce":
		msg = &Bounce{}
	case "Get":
		msg = &Get{}
	case "Set":
		msg = &Set{}
	case "SetNotify":
		msg = &SetNotify{}
	default:
		return nil, &UnknownCmdError{Cmd: cmd, Family: "client message"}
	}

	if err := json.Unmarshal(raw, msg); err != nil {
		return nil, fmt.Errorf("protocol: decode %s: %w", cmd, err)
	}
	return msg, nil
}
