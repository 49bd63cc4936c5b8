package protocol

// DataPackage carries the name/id mapping tables a client needs to talk
// about items and locations. The core does not validate its checksums
// against RoomInfo; that reconciliation belongs to the consumer.
type DataPackage struct {
	Data DataPackageStore `json:"data"`
}

func (*DataPackage) Cmd() string             { return "DataPackage" }
func (*DataPackage) anonymousServerMessage() {}

// DataPackageStore maps game name to that game's data.
type DataPackageStore struct {
	Games map[string]GameData `json:"games"`
}

// GameData is one game's slice of the data package.
type GameData struct {
	ItemNameToID     map[string]int64 `json:"item_name_to_id"`
	LocationNameToID map[string]int64 `json:"location_name_to_id"`

	// Version is a data package version counter.
	//
	// Deprecated: compare Checksum instead.
	Version int64 `json:"version"`

	Checksum string `json:"checksum"`
}
