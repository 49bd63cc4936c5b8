package protocol

import "encoding/json"

// ClientMessage is the closed family of messages the client may send.
type ClientMessage interface {
	Message
	clientMessage()
}

// Connect initiates authentication with the game session.
type Connect struct {
	// Password is the room password, or nil when the room has none.
	Password *string `json:"password"`

	// Game is the name of the game this client is playing.
	Game string `json:"game"`

	// Name is the player (slot) name for this client.
	Name string `json:"name"`

	// UUID uniquely identifies this client instance.
	UUID string `json:"uuid"`

	// Version is the protocol version this client supports.
	Version NetworkVersion `json:"version"`

	// ItemsHandling configures which items the server should send.
	ItemsHandling ItemsHandlingFlags `json:"items_handling"`

	// Tags are capability tags of this client, e.g. "DeathLink".
	Tags []string `json:"tags"`

	// SlotData requests that the Connected reply include slot_data.
	SlotData bool `json:"slot_data"`
}

func (*Connect) Cmd() string    { return "Connect" }
func (*Connect) clientMessage() {}

// ConnectUpdate changes Connect arguments of an established session.
// Only tags and items_handling may be updated.
type ConnectUpdate struct {
	ItemsHandling ItemsHandlingFlags `json:"items_handling"`
	Tags          []string           `json:"tags"`
}

func (*ConnectUpdate) Cmd() string    { return "ConnectUpdate" }
func (*ConnectUpdate) clientMessage() {}

// Sync requests a ReceivedItems packet restating all items from index 0.
type Sync struct{}

func (*Sync) Cmd() string    { return "Sync" }
func (*Sync) clientMessage() {}

// LocationChecks informs the server of locations the client has checked.
// Duplicates and resends are harmless.
type LocationChecks struct {
	Locations []int64 `json:"locations"`
}

func (*LocationChecks) Cmd() string    { return "LocationChecks" }
func (*LocationChecks) clientMessage() {}

// LocationScouts asks for the items at the given locations without checking
// them. The server answers with LocationInfo.
type LocationScouts struct {
	Locations []int64 `json:"locations"`

	// CreateAsHint, when non-zero, also creates and broadcasts the scout
	// as a player-visible hint without deducting hint points. A value of
	// 2 broadcasts only new hints.
	CreateAsHint int64 `json:"create_as_hint"`
}

func (*LocationScouts) Cmd() string    { return "LocationScouts" }
func (*LocationScouts) clientMessage() {}

// StatusUpdate reports the sender's game state, e.g. readiness or goal
// completion.
type StatusUpdate struct {
	Status ClientStatus `json:"status"`
}

func (*StatusUpdate) Cmd() string    { return "StatusUpdate" }
func (*StatusUpdate) clientMessage() {}

// Say sends chat text to be distributed to other clients.
type Say struct {
	Text string `json:"text"`
}

func (*Say) Cmd() string    { return "Say" }
func (*Say) clientMessage() {}

// GetDataPackage requests the data package. Does not require
// authentication.
type GetDataPackage struct {
	// Games limits the reply to the named games. Empty requests
	// everything.
	Games []string `json:"games"`
}

func (*GetDataPackage) Cmd() string    { return "GetDataPackage" }
func (*GetDataPackage) clientMessage() {}

// Bounce asks the server to forward Data to every client matching any of
// the given games, slots or tags.
type Bounce struct {
	Games []string        `json:"games,omitempty"`
	Slots []int64         `json:"slots,omitempty"`
	Tags  []string        `json:"tags,omitempty"`
	Data  json.RawMessage `json:"data"`
}

func (*Bounce) Cmd() string    { return "Bounce" }
func (*Bounce) clientMessage() {}

// Get requests values from the server's data storage. Answered with
// Retrieved. Keys prefixed "_read_" address server-maintained data such as
// hints or slot data.
type Get struct {
	Keys []string `json:"keys"`
}

func (*Get) Cmd() string    { return "Get" }
func (*Get) clientMessage() {}

// Set writes to the server's data storage. Keys starting with "_read" can
// never be set.
type Set struct {
	Key string `json:"key"`

	// Default is used as the starting value when the key has no value on
	// the server.
	Default json.RawMessage `json:"default"`

	// WantReply requests a SetReply response even without a SetNotify
	// subscription.
	WantReply bool `json:"want_reply"`

	// Operations are applied in order of appearance.
	Operations []DataStorageOperation `json:"operations"`
}

func (*Set) Cmd() string    { return "Set" }
func (*Set) clientMessage() {}

// SetNotify subscribes this session to SetReply packets for the given keys.
type SetNotify struct {
	Keys []string `json:"keys"`
}

func (*SetNotify) Cmd() string    { return "SetNotify" }
func (*SetNotify) clientMessage() {}

// StorageOperation names one data storage transformation.
type StorageOperation string

const (
	OpReplace    StorageOperation = "replace"
	OpDefault    StorageOperation = "default"
	OpAdd        StorageOperation = "add"
	OpMul        StorageOperation = "mul"
	OpPow        StorageOperation = "pow"
	OpMod        StorageOperation = "mod"
	OpFloor      StorageOperation = "floor"
	OpCeil       StorageOperation = "ceil"
	OpMax        StorageOperation = "max"
	OpMin        StorageOperation = "min"
	OpAnd        StorageOperation = "and"
	OpOr         StorageOperation = "or"
	OpXor        StorageOperation = "xor"
	OpLeftShift  StorageOperation = "left_shift"
	OpRightShift StorageOperation = "right_shift"
	OpRemove     StorageOperation = "remove"
	OpPop        StorageOperation = "pop"
	OpUpdate     StorageOperation = "update"
)

// DataStorageOperation is one step of a Set request: an operation name plus
// its operand. Operations like "floor" or "default" ignore the value.
type DataStorageOperation struct {
	Operation StorageOperation `json:"operation"`
	Value     json.RawMessage  `json:"value,omitempty"`
}
