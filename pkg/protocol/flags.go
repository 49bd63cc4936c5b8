package protocol

// ItemsHandlingFlags configures which items the server should send to the
// client. It is transmitted as a plain JSON number.
type ItemsHandlingFlags uint8

const (
	// ReceiveItems indicates the client wants items from other worlds.
	ReceiveItems ItemsHandlingFlags = 0b001

	// LocalItems indicates the client also wants its own items echoed
	// back. Only meaningful when ReceiveItems is set.
	LocalItems ItemsHandlingFlags = 0b010

	// StartingInventory indicates the client wants its starting inventory
	// delivered. Only meaningful when ReceiveItems is set.
	StartingInventory ItemsHandlingFlags = 0b100
)

// Has returns true if the flags contain the specified flag bit, without
// applying the ReceiveItems dependency.
func (f ItemsHandlingFlags) Has(flag ItemsHandlingFlags) bool {
	return f&flag != 0
}

// CanReceiveItems reports whether the client receives items at all.
func (f ItemsHandlingFlags) CanReceiveItems() bool {
	return f.Has(ReceiveItems)
}

// HasLocalItems reports whether the client's own items are echoed back.
// Reads false whenever ReceiveItems is unset, regardless of the bit.
func (f ItemsHandlingFlags) HasLocalItems() bool {
	return f.CanReceiveItems() && f.Has(LocalItems)
}

// RequestsStartingInventory reports whether the starting inventory is
// delivered. Reads false whenever ReceiveItems is unset, regardless of the
// bit.
func (f ItemsHandlingFlags) RequestsStartingInventory() bool {
	return f.CanReceiveItems() && f.Has(StartingInventory)
}

// NetworkItemFlags describes independent boolean properties of an item
// occurrence. Transmitted as a plain JSON number.
type NetworkItemFlags uint8

const (
	ItemProgression NetworkItemFlags = 0b001 // Unlocks further progress
	ItemImportant   NetworkItemFlags = 0b010 // Useful but not required
	ItemTrap        NetworkItemFlags = 0b100 // Actively harmful
)

// Has returns true if the flags contain the specified flag bit.
func (f NetworkItemFlags) Has(flag NetworkItemFlags) bool {
	return f&flag != 0
}

// IsProgression reports whether the item unlocks progression.
func (f NetworkItemFlags) IsProgression() bool { return f.Has(ItemProgression) }

// IsImportant reports whether the item is flagged important.
func (f NetworkItemFlags) IsImportant() bool { return f.Has(ItemImportant) }

// IsTrap reports whether the item is a trap.
func (f NetworkItemFlags) IsTrap() bool { return f.Has(ItemTrap) }
