package protocol

// NetworkPlayer describes one player in the multiworld, connected or not.
type NetworkPlayer struct {
	Team  int64  `json:"team"`
	Slot  int64  `json:"slot"`
	Alias string `json:"alias"`
	Name  string `json:"name"`
}

// NetworkItem describes one item occurrence: which item, where it was
// found, and whose world it belongs to.
type NetworkItem struct {
	Item     int64            `json:"item"`
	Location int64            `json:"location"`
	Player   int64            `json:"player"`
	Flags    NetworkItemFlags `json:"flags"`
}

// SlotType identifies the kind of a slot. Transmitted as a JSON number.
type SlotType int64

const (
	SlotSpectator SlotType = 0
	SlotPlayer    SlotType = 1
	SlotGroup     SlotType = 2
)

// String returns the string representation of the slot type.
func (st SlotType) String() string {
	switch st {
	case SlotSpectator:
		return "Spectator"
	case SlotPlayer:
		return "Player"
	case SlotGroup:
		return "Group"
	default:
		return "Unknown"
	}
}

// NetworkSlot describes one slot of the multiworld.
type NetworkSlot struct {
	Name string   `json:"name"`
	Game string   `json:"game"`
	Type SlotType `json:"type"`

	// GroupMembers is only populated when Type is SlotGroup.
	GroupMembers []int64 `json:"group_members"`
}

// PermissionName is one of the closed set of permission map keys advertised
// in RoomInfo.
type PermissionName string

const (
	PermissionRelease   PermissionName = "release"
	PermissionCollect   PermissionName = "collect"
	PermissionRemaining PermissionName = "remaining"
)

// Permission is the value side of the RoomInfo permission map. Transmitted
// as a JSON number.
type Permission int64

const (
	PermissionDisabled    Permission = 0b000
	PermissionEnabled     Permission = 0b001
	PermissionGoal        Permission = 0b010
	PermissionAuto        Permission = 0b110
	PermissionAutoEnabled Permission = 0b111
)

// String returns the string representation of the permission value.
func (p Permission) String() string {
	switch p {
	case PermissionDisabled:
		return "Disabled"
	case PermissionEnabled:
		return "Enabled"
	case PermissionGoal:
		return "Goal"
	case PermissionAuto:
		return "Auto"
	case PermissionAutoEnabled:
		return "AutoEnabled"
	default:
		return "Unknown"
	}
}

// ClientStatus is the client-reported game state sent in StatusUpdate.
// Transmitted as a JSON number.
type ClientStatus int64

const (
	StatusUnknown   ClientStatus = 0
	StatusConnected ClientStatus = 5
	StatusReady     ClientStatus = 10
	StatusPlaying   ClientStatus = 20
	StatusGoal      ClientStatus = 30
)

// String returns the string representation of the client status.
func (cs ClientStatus) String() string {
	switch cs {
	case StatusUnknown:
		return "Unknown"
	case StatusConnected:
		return "Connected"
	case StatusReady:
		return "Ready"
	case StatusPlaying:
		return "Playing"
	case StatusGoal:
		return "Goal"
	default:
		return "Unknown"
	}
}

// Hint describes one hint known to the server, as returned through the data
// storage "_read_hints_{team}_{slot}" keys.
type Hint struct {
	ReceivingPlayer int64            `json:"receiving_player"`
	FindingPlayer   int64            `json:"finding_player"`
	Location        int64            `json:"location"`
	Item            int64            `json:"item"`
	Found           bool             `json:"found"`
	Entrance        string           `json:"entrance,omitempty"`
	ItemFlags       NetworkItemFlags `json:"item_flags"`
}

// DeathLink is the conventional payload of a Bounce carrying the "DeathLink"
// tag.
type DeathLink struct {
	// Time is the Unix timestamp of the death, used for deduplication.
	Time float64 `json:"time"`

	// Cause is an optional description of the death.
	Cause string `json:"cause,omitempty"`

	// Source is the name of the player that died.
	Source string `json:"source"`
}
