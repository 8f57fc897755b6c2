package encoder

import (
	"strings"
	"testing"
)

func TestRenderSingleEvent(t *testing.T) {
	enc := &Encoding{
		Source: "song.mid",
		Events: []NoteEvent{
			{AbsTime: 0, Delta: 0, Kind: NoteOn, Note: 60, Velocity: 100, Channel: 0},
		},
	}

	got, err := Render(enc, "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	wantLines := []string{
		"// MIDI data from song.mid",
		"// Format: delta_time_high(8bit), delta_time_low(8bit), event_type(8bit), note(8bit), velocity(8bit), channel(8bit)",
		"// event_type: 0 = note off, 1 = note on",
		"const uint8_t MIDI_DATA[] PROGMEM = {0x00, 0x00, 0x01, 0x3c, 0x64, 0x00};",
		"const uint16_t MIDI_EVENT_COUNT = 1;",
		"const uint8_t MIDI_BYTES_PER_EVENT = 6;  // Now 6 bytes per event",
	}

	lines := strings.Split(got, "\n")
	if len(lines) < len(wantLines) {
		t.Fatalf("Render() produced %d lines, want at least %d", len(lines), len(wantLines))
	}
	for i, want := range wantLines {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i+1, lines[i], want)
		}
	}

	if !strings.Contains(got, "void readMidiEvent(uint16_t index, uint16_t &delta, uint8_t &type, uint8_t &note, uint8_t &velocity, uint8_t &channel)") {
		t.Error("Render() missing accessor routine signature")
	}
	if !strings.Contains(got, "pgm_read_byte(&MIDI_DATA[pos + 5])") {
		t.Error("Render() accessor should read the channel byte")
	}
}

func TestRenderEmptyEncoding(t *testing.T) {
	enc := &Encoding{Source: "empty.mid"}

	got, err := Render(enc, "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(got, "const uint8_t MIDI_DATA[] PROGMEM = {};") {
		t.Error("empty encoding should render an empty array literal")
	}
	if !strings.Contains(got, "const uint16_t MIDI_EVENT_COUNT = 0;") {
		t.Error("empty encoding should render a zero count")
	}
}

func TestRenderCustomArrayName(t *testing.T) {
	enc := &Encoding{
		Source: "song.mid",
		Events: []NoteEvent{
			{Delta: 0, Kind: NoteOn, Note: 60, Velocity: 100},
		},
	}

	got, err := Render(enc, "SONG_DATA")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(got, "const uint8_t SONG_DATA[] PROGMEM = {") {
		t.Error("array declaration should use the custom name")
	}
	if !strings.Contains(got, "pgm_read_byte(&SONG_DATA[pos]) << 8") {
		t.Error("accessor should reference the custom name")
	}
	if strings.Contains(got, "MIDI_DATA[") {
		t.Error("default array name should not leak into the output")
	}
}

func TestRenderTokenCount(t *testing.T) {
	enc := &Encoding{
		Source: "song.mid",
		Events: []NoteEvent{
			{Delta: 0, Kind: NoteOn, Note: 60, Velocity: 100},
			{Delta: 240, Kind: NoteOff, Note: 60},
			{Delta: 240, Kind: NoteOn, Note: 64, Velocity: 90, Channel: 1},
		},
	}

	got, err := Render(enc, "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Exactly 6 hex tokens per event
	if n := strings.Count(got, "0x"); n != enc.Count()*BytesPerEvent {
		t.Errorf("rendered %d byte tokens, want %d", n, enc.Count()*BytesPerEvent)
	}
}
