package queue

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEncode(t *testing.T) {
	body, err := Encode(SeatMapEvent{Type: SeatsGenerated, SeatMapId: 900, SectionId: 502, SeatIds: []uint{1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got["type"] != SeatsGenerated || got["seatMapId"] != float64(900) || got["sectionId"] != float64(502) {
		t.Errorf("payload = %s", body)
	}
	at, err := time.Parse(time.RFC3339Nano, got["at"].(string))
	if err != nil || at.IsZero() {
		t.Errorf("at = %v (%v)", got["at"], err)
	}
	if _, ok := got["status"]; ok {
		t.Errorf("empty status should be omitted: %s", body)
	}
}

func TestEncodeKeepsTimestamp(t *testing.T) {
	at := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	body, _ := Encode(SeatMapEvent{Type: SeatMapSaved, At: at})
	var got SeatMapEvent
	json.Unmarshal(body, &got)
	if !got.At.Equal(at) {
		t.Errorf("At = %s, want %s", got.At, at)
	}
}
