package protocol

import (
	"encoding/json"
	"testing"
)

// FuzzSplitEnvelope tests that splitting arbitrary bytes doesn't panic.
func FuzzSplitEnvelope(f *testing.F) {
	// Seed with valid envelopes
	f.Add([]byte(`[]`))
	f.Add([]byte(`[{"cmd":"Sync"}]`))
	f.Add([]byte(`[{"cmd":"RoomUpdate"},{"cmd":"PrintJSON","type":"Chat","data":[]}]`))
	f.Add([]byte(`{"cmd":"Sync"}`))
	f.Add([]byte(`[{`))
	f.Add([]byte(``))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Should not panic
		_, _ = SplitEnvelope(data)
	})
}

// FuzzDecodeServer tests that decoding arbitrary bytes doesn't panic.
func FuzzDecodeServer(f *testing.F) {
	// Seed with valid messages of each family
	f.Add([]byte(`{"cmd":"ReceivedItems","index":0,"items":[]}`))
	f.Add([]byte(`{"cmd":"PrintJSON","type":"ItemSend","data":[{"text":"x"}]}`))
	f.Add([]byte(`{"cmd":"InvalidPacket","type":"cmd","text":"?"}`))
	f.Add([]byte(`{"cmd":12}`))
	f.Add([]byte(`{"cmd":"Nope"}`))
	f.Add([]byte(`null`))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Should not panic
		_, _ = DecodeServer(json.RawMessage(data))
		_, _ = DecodeAnonymousServer(json.RawMessage(data))
	})
}
