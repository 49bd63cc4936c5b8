package protocol

import "testing"

func TestItemsHandlingFlagsDependency(t *testing.T) {
	// LocalItems and StartingInventory must read false whenever
	// ReceiveItems is unset, regardless of their underlying bits.
	for bits := ItemsHandlingFlags(0); bits < 8; bits++ {
		receive := bits.Has(ReceiveItems)

		if got := bits.CanReceiveItems(); got != receive {
			t.Errorf("flags %03b: CanReceiveItems() = %v, want %v", bits, got, receive)
		}
		if got, want := bits.HasLocalItems(), receive && bits.Has(LocalItems); got != want {
			t.Errorf("flags %03b: HasLocalItems() = %v, want %v", bits, got, want)
		}
		if got, want := bits.RequestsStartingInventory(), receive && bits.Has(StartingInventory); got != want {
			t.Errorf("flags %03b: RequestsStartingInventory() = %v, want %v", bits, got, want)
		}
	}
}

func TestItemsHandlingFlagsCombine(t *testing.T) {
	combined := ReceiveItems | LocalItems | StartingInventory

	if !combined.CanReceiveItems() {
		t.Error("CanReceiveItems() = false, want true")
	}
	if !combined.HasLocalItems() {
		t.Error("HasLocalItems() = false, want true")
	}
	if !combined.RequestsStartingInventory() {
		t.Error("RequestsStartingInventory() = false, want true")
	}
}

func TestNetworkItemFlags(t *testing.T) {
	tests := []struct {
		name        string
		flags       NetworkItemFlags
		progression bool
		important   bool
		trap        bool
	}{
		{"none", 0, false, false, false},
		{"progression", ItemProgression, true, false, false},
		{"important", ItemImportant, false, true, false},
		{"trap", ItemTrap, false, false, true},
		{"progression_trap", ItemProgression | ItemTrap, true, false, true},
		{"all", ItemProgression | ItemImportant | ItemTrap, true, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.flags.IsProgression(); got != tc.progression {
				t.Errorf("IsProgression() = %v, want %v", got, tc.progression)
			}
			if got := tc.flags.IsImportant(); got != tc.important {
				t.Errorf("IsImportant() = %v, want %v", got, tc.important)
			}
			if got := tc.flags.IsTrap(); got != tc.trap {
				t.Errorf("IsTrap() = %v, want %v", got, tc.trap)
			}
		})
	}
}
