// Package protocol implements the Archipelago JSON wire protocol.
//
// The package is pure (de)serialization: it defines the typed message model
// for both directions of the connection and the envelope codec that maps
// between typed messages and wire bytes. It performs no I/O; the transport
// and session lifecycle live in pkg/client.
//
// # Wire Format
//
// Every frame transmitted in either direction is a JSON array. Each element
// of the array is a JSON object carrying a string "cmd" field that names its
// message variant:
//
//	[{"cmd":"RoomInfo","version":{...},"games":[...],...}]
//
// Outbound frames always contain exactly one element; inbound frames may
// contain several. Splitting the array is deliberately decoupled from
// decoding an element into a typed message (SplitEnvelope versus
// DecodeServer/DecodeAnonymousServer), so a consumer can buffer undecoded
// elements and commit to decode errors one message at a time.
//
// # Message Families
//
// Messages form closed tagged unions, one per direction:
//
//   - ClientMessage: everything the client may send (Connect, Say,
//     LocationChecks, Get/Set/SetNotify, ...).
//   - ServerMessage: everything the server may send once the session is
//     authenticated (ReceivedItems, PrintJSON, Bounced, ...).
//   - AnonymousServerMessage: the family legal before authentication
//     (RoomInfo, Connected, ConnectionRefused, DataPackage,
//     InvalidPacket). It is disjoint from ServerMessage except for
//     InvalidPacket.
//
// An unrecognized or missing "cmd" is a decode error, never a panic; the
// server reports problems it detects with an InvalidPacket message, which is
// a regular member of both server families.
//
// # File Structure
//
//   - version.go: NetworkVersion and the supported protocol version
//   - flags.go: ItemsHandlingFlags and NetworkItemFlags bit sets
//   - types.go: shared value types (players, slots, permissions, hints)
//   - server.go: server → client messages
//   - client.go: client → server messages
//   - printjson.go: the PrintJSON event and its message parts
//   - datapackage.go: per-game name/id mapping tables
//   - envelope.go: envelope codec and per-family decoders
package protocol
