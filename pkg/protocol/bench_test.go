package protocol

import (
	"encoding/json"
	"testing"
)

// === Envelope Benchmarks ===

func BenchmarkSplitEnvelope_Single(b *testing.B) {
	payload := []byte(`[{"cmd":"ReceivedItems","index":3,"items":[{"item":77,"location":101,"player":1,"flags":1}]}]`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SplitEnvelope(payload)
	}
}

func BenchmarkSplitEnvelope_Batch(b *testing.B) {
	elems := make([]json.RawMessage, 16)
	for i := range elems {
		elems[i] = json.RawMessage(`{"cmd":"RoomUpdate","hint_points":5}`)
	}
	payload, _ := json.Marshal(elems)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SplitEnvelope(payload)
	}
}

// === Decode Benchmarks ===

func BenchmarkDecodeServer_ReceivedItems(b *testing.B) {
	raw := json.RawMessage(`{"cmd":"ReceivedItems","index":3,"items":[{"item":77,"location":101,"player":1,"flags":1}]}`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DecodeServer(raw)
	}
}

func BenchmarkDecodeServer_PrintJSON(b *testing.B) {
	raw := json.RawMessage(`{"cmd":"PrintJSON","type":"ItemSend","receiving":2,"item":{"item":77,"location":101,"player":1,"flags":1},"data":[{"type":"player_id","text":"1"},{"text":" sent "},{"type":"item_id","text":"77","player":2,"flags":1}]}`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DecodeServer(raw)
	}
}

// === Encode Benchmarks ===

func BenchmarkMarshal_LocationChecks(b *testing.B) {
	msg := &LocationChecks{Locations: []int64{100, 101, 102, 103, 104, 105, 106, 107}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Marshal(msg)
	}
}

func BenchmarkMarshal_Connect(b *testing.B) {
	msg := &Connect{
		Game:          "Timespinner",
		Name:          "Bob",
		UUID:          "8a2f1d36-9f1b-4d52-9c57-6a1b43d0e5aa",
		Version:       SupportedVersion,
		ItemsHandling: ReceiveItems | StartingInventory,
		Tags:          []string{"DeathLink"},
		SlotData:      true,
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Marshal(msg)
	}
}
