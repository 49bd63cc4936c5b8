package protocol

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Message is implemented by every protocol message in either direction.
// Cmd returns the wire discriminator identifying the variant.
type Message interface {
	Cmd() string
}

// ServerMessage is the closed family of messages the server may send once
// the session is authenticated.
type ServerMessage interface {
	Message
	serverMessage()
}

// AnonymousServerMessage is the closed family of messages the server may
// send before authentication. It is disjoint from ServerMessage except for
// InvalidPacket, which belongs to both.
type AnonymousServerMessage interface {
	Message
	anonymousServerMessage()
}

// RoomInfo is the first message of every connection: the server's
// description of the session. It is received exactly once and is immutable
// afterward.
type RoomInfo struct {
	// Version is the protocol version the server is running.
	Version NetworkVersion `json:"version"`

	// GeneratorVersion is the version that generated the multiworld.
	GeneratorVersion NetworkVersion `json:"generator_version"`

	// Tags are capability tags of the server, e.g. "WebHost".
	Tags []string `json:"tags"`

	// PasswordRequired denotes whether a password is needed to join.
	PasswordRequired bool `json:"password"`

	// Permissions maps the three permission names (release, collect,
	// remaining) to their configured values.
	Permissions map[PermissionName]Permission `json:"permissions"`

	// HintCost is the percentage of total locations that must be checked
	// to afford one hint.
	HintCost int64 `json:"hint_cost"`

	// LocationCheckPoints is the number of hint points awarded per check.
	LocationCheckPoints int64 `json:"location_check_points"`

	// Games lists the games present in this multiworld.
	Games []string `json:"games"`

	// DataPackageVersions maps game name to data package version counter.
	//
	// Deprecated: use DataPackageChecksums instead. Retained because
	// servers still send it.
	DataPackageVersions map[string]int64 `json:"datapackage_versions"`

	// DataPackageChecksums maps game name to data package checksum, used
	// to decide which cached game data is stale.
	DataPackageChecksums map[string]string `json:"datapackage_checksums"`

	// SeedName uniquely identifies this generation.
	SeedName string `json:"seed_name"`

	// Time is the server's Unix timestamp, sent for synchronization.
	Time float64 `json:"time"`
}

func (*RoomInfo) Cmd() string             { return "RoomInfo" }
func (*RoomInfo) anonymousServerMessage() {}

// ConnectionRefusedError is one reason the server refused a Connect
// request. The set is closed.
type ConnectionRefusedError string

const (
	// RefusedInvalidSlot: the sent name matched no auth entry.
	RefusedInvalidSlot ConnectionRefusedError = "InvalidSlot"

	// RefusedInvalidGame: the slot was found but its game mismatched.
	RefusedInvalidGame ConnectionRefusedError = "InvalidGame"

	// RefusedIncompatibleVersion: protocol version mismatch.
	RefusedIncompatibleVersion ConnectionRefusedError = "IncompatibleVersion"

	// RefusedInvalidPassword: wrong or missing password.
	RefusedInvalidPassword ConnectionRefusedError = "InvalidPassword"

	// RefusedInvalidItemsHandling: bad items_handling value or flag
	// combination.
	RefusedInvalidItemsHandling ConnectionRefusedError = "InvalidItemsHandling"
)

// ConnectionRefused is sent when the server rejects a Connect request
// during the handshake.
type ConnectionRefused struct {
	Errors []ConnectionRefusedError `json:"errors"`
}

func (*ConnectionRefused) Cmd() string             { return "ConnectionRefused" }
func (*ConnectionRefused) anonymousServerMessage() {}

// Connected is sent when the handshake completes successfully. It is the
// session's identity snapshot and is retained for the session's lifetime.
type Connected struct {
	// Team is this client's team number.
	Team int64 `json:"team"`

	// Slot is this client's slot number on its team.
	Slot int64 `json:"slot"`

	// Players lists all players in the multiworld, connected or not.
	Players []NetworkPlayer `json:"players"`

	// MissingLocations holds ids of locations still to be checked.
	MissingLocations []int64 `json:"missing_locations"`

	// CheckedLocations holds ids of locations already checked.
	CheckedLocations []int64 `json:"checked_locations"`

	// SlotData is game-specific opaque data for this slot. Only present
	// when the Connect request asked for it.
	SlotData map[string]json.RawMessage `json:"slot_data,omitempty"`

	// SlotInfo maps each slot to its descriptor. The wire key is a
	// decimal string even though the slot id is logically an integer;
	// use SlotInfoByID or ParseSlotInfo for typed access.
	SlotInfo map[string]NetworkSlot `json:"slot_info"`

	// HintPoints is the hint point balance of this player.
	HintPoints int64 `json:"hint_points"`
}

func (*Connected) Cmd() string             { return "Connected" }
func (*Connected) anonymousServerMessage() {}

// SlotInfoByID looks up a slot descriptor by its integer id.
func (c *Connected) SlotInfoByID(id int64) (NetworkSlot, bool) {
	slot, ok := c.SlotInfo[strconv.FormatInt(id, 10)]
	return slot, ok
}

// ParseSlotInfo converts the string-keyed slot map to integer keys using a
// strict decimal parse. A malformed key is an error, not skipped.
func (c *Connected) ParseSlotInfo() (map[int64]NetworkSlot, error) {
	slots := make(map[int64]NetworkSlot, len(c.SlotInfo))
	for key, slot := range c.SlotInfo {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("protocol: malformed slot_info key %q: %w", key, err)
		}
		slots[id] = slot
	}
	return slots, nil
}

// ReceivedItems delivers items to the client.
type ReceivedItems struct {
	// Index is the next empty slot in the client's item list.
	Index int64 `json:"index"`

	// Items are the items being received.
	Items []NetworkItem `json:"items"`
}

func (*ReceivedItems) Cmd() string    { return "ReceivedItems" }
func (*ReceivedItems) serverMessage() {}

// LocationInfo acknowledges a LocationScouts request with the items found
// at the scouted locations.
type LocationInfo struct {
	Locations []NetworkItem `json:"locations"`
}

func (*LocationInfo) Cmd() string    { return "LocationInfo" }
func (*LocationInfo) serverMessage() {}

// RoomUpdate carries incremental changes to the session state. All fields
// are optional; only changes are sent. CheckedLocations may be a partial
// update and MissingLocations is never sent.
type RoomUpdate struct {
	// Players is resent in full on alias renames.
	Players []NetworkPlayer `json:"players,omitempty"`

	// CheckedLocations holds newly checked location ids.
	CheckedLocations []int64 `json:"checked_locations,omitempty"`

	Tags                 []string                      `json:"tags,omitempty"`
	PasswordRequired     *bool                         `json:"password,omitempty"`
	Permissions          map[PermissionName]Permission `json:"permissions,omitempty"`
	HintCost             *int64                        `json:"hint_cost,omitempty"`
	LocationCheckPoints  *int64                        `json:"location_check_points,omitempty"`
	HintPoints           *int64                        `json:"hint_points,omitempty"`
	DataPackageChecksums map[string]string             `json:"datapackage_checksums,omitempty"`
	Time                 *float64                      `json:"time,omitempty"`
}

func (*RoomUpdate) Cmd() string    { return "RoomUpdate" }
func (*RoomUpdate) serverMessage() {}

// Bounced is the broadcast of a Bounce request to its targets.
type Bounced struct {
	// Games, Slots and Tags name the targets this message was addressed
	// to; all three are optional.
	Games []string `json:"games,omitempty"`
	Slots []int64  `json:"slots,omitempty"`
	Tags  []string `json:"tags,omitempty"`

	// Data is the Bounce payload, copied verbatim.
	Data json.RawMessage `json:"data,omitempty"`
}

func (*Bounced) Cmd() string    { return "Bounced" }
func (*Bounced) serverMessage() {}

// Retrieved answers a Get request. A requested key absent from the server's
// storage maps to JSON null.
type Retrieved struct {
	Keys map[string]json.RawMessage `json:"keys"`
}

func (*Retrieved) Cmd() string    { return "Retrieved" }
func (*Retrieved) serverMessage() {}

// SetReply reports a data storage write, either because the triggering Set
// asked for a reply or because the key was subscribed via SetNotify. It is
// sent even when the write did not change the value.
type SetReply struct {
	Key           string          `json:"key"`
	Value         json.RawMessage `json:"value"`
	OriginalValue json.RawMessage `json:"original_value,omitempty"`
}

func (*SetReply) Cmd() string    { return "SetReply" }
func (*SetReply) serverMessage() {}

// PacketProblemType classifies the problem reported by InvalidPacket.
type PacketProblemType string

const (
	// ProblemCmd: the cmd discriminator could not be parsed.
	ProblemCmd PacketProblemType = "cmd"

	// ProblemArguments: the arguments of the packet were not correct.
	ProblemArguments PacketProblemType = "arguments"
)

// InvalidPacket is the server's report of a problem it detected in a packet
// the client sent. It is a regular protocol message, not a transport
// failure, and is legal in both server families.
type InvalidPacket struct {
	Type PacketProblemType `json:"type"`

	// OriginalCmd is the cmd of the faulty packet, empty if the cmd
	// itself failed to parse.
	OriginalCmd string `json:"original_cmd,omitempty"`

	// Text is a descriptive message of the problem.
	Text string `json:"text"`
}

func (*InvalidPacket) Cmd() string             { return "InvalidPacket" }
func (*InvalidPacket) serverMessage()          {}
func (*InvalidPacket) anonymousServerMessage() {}
