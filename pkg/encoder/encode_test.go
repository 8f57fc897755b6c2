package encoder

import (
	"bytes"
	"testing"
)

func TestPackLayout(t *testing.T) {
	events := []NoteEvent{
		{Delta: 0, Kind: NoteOn, Note: 60, Velocity: 100, Channel: 0},
		{Delta: 240, Kind: NoteOff, Note: 60, Velocity: 0, Channel: 3},
		{Delta: 0x1234, Kind: NoteOn, Note: 127, Velocity: 127, Channel: 15},
	}

	want := []byte{
		0x00, 0x00, 0x01, 0x3C, 0x64, 0x00,
		0x00, 0xF0, 0x00, 0x3C, 0x00, 0x03,
		0x12, 0x34, 0x01, 0x7F, 0x7F, 0x0F,
	}

	got := Pack(events)
	if !bytes.Equal(got, want) {
		t.Errorf("Pack() = % X, want % X", got, want)
	}
}

func TestPackEmpty(t *testing.T) {
	if got := Pack(nil); len(got) != 0 {
		t.Errorf("Pack(nil) length = %d, want 0", len(got))
	}
}

func TestPackDeltaTruncation(t *testing.T) {
	// Deltas wider than 16 bits keep only their low 16 bits
	events := []NoteEvent{
		{Delta: 70000, Kind: NoteOn, Note: 60, Velocity: 100, Channel: 0},
	}

	got := Pack(events)
	if got[0] != 0x11 || got[1] != 0x70 {
		t.Errorf("truncated delta bytes = %02X %02X, want 11 70", got[0], got[1])
	}

	ev, err := EventAt(got, 0)
	if err != nil {
		t.Fatalf("EventAt() error = %v", err)
	}
	if ev.Delta != 70000%65536 {
		t.Errorf("reconstructed delta = %d, want %d", ev.Delta, 70000%65536)
	}
}

func TestEventAtRoundTrip(t *testing.T) {
	events := []NoteEvent{
		{Delta: 0, Kind: NoteOn, Note: 60, Velocity: 100, Channel: 0},
		{Delta: 480, Kind: NoteOff, Note: 60, Velocity: 64, Channel: 9},
		{Delta: 65535, Kind: NoteOn, Note: 1, Velocity: 1, Channel: 1},
	}
	data := Pack(events)

	for i, want := range events {
		got, err := EventAt(data, i)
		if err != nil {
			t.Fatalf("EventAt(%d) error = %v", i, err)
		}
		if got.Delta != want.Delta || got.Kind != want.Kind ||
			got.Note != want.Note || got.Velocity != want.Velocity ||
			got.Channel != want.Channel {
			t.Errorf("EventAt(%d) = %+v, want %+v", i, got, want)
		}
	}
}

func TestEventAtOutOfRange(t *testing.T) {
	data := Pack([]NoteEvent{{Kind: NoteOn, Note: 60}})

	tests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"past end", 1},
		{"far past end", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EventAt(data, tt.index); err == nil {
				t.Error("EventAt() expected error for out-of-range index")
			}
		})
	}
}

func TestValidateRecords(t *testing.T) {
	data := Pack([]NoteEvent{
		{Kind: NoteOn, Note: 60, Velocity: 100},
		{Kind: NoteOff, Note: 60},
	})

	if err := ValidateRecords(data, 2); err != nil {
		t.Errorf("ValidateRecords() error = %v, want nil", err)
	}
	if err := ValidateRecords(data, 3); err == nil {
		t.Error("ValidateRecords() expected error for wrong count")
	}
	if err := ValidateRecords(data[:7], 1); err == nil {
		t.Error("ValidateRecords() expected error for ragged stream")
	}
}

func TestEventKindString(t *testing.T) {
	if NoteOn.String() != "note on" {
		t.Errorf("NoteOn.String() = %q", NoteOn.String())
	}
	if NoteOff.String() != "note off" {
		t.Errorf("NoteOff.String() = %q", NoteOff.String())
	}
}
