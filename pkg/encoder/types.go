// Package encoder converts standard MIDI files into a compact byte encoding
// for embedding in microcontroller firmware
package encoder

// EventKind classifies a note event
type EventKind uint8

const (
	// NoteOff represents a note-off event (including note-on with velocity 0)
	NoteOff EventKind = 0
	// NoteOn represents a note-on event with velocity > 0
	NoteOn EventKind = 1
)

// String returns a human-readable name for the event kind
func (k EventKind) String() string {
	if k == NoteOn {
		return "note on"
	}
	return "note off"
}

// Format constants for the packed encoding
const (
	// BytesPerEvent is the size of one packed event record
	BytesPerEvent = 6
	// MaxDelta is the largest delta time the 16-bit field can hold
	MaxDelta = 0xFFFF
)

// NoteEvent represents a single note event extracted from a MIDI file.
// AbsTime is the event's track-local absolute time (cumulative sum of the
// per-message deltas within its originating track). Delta is filled in after
// the cross-track merge and sort: the difference from the previous event's
// AbsTime in the globally sorted sequence.
type NoteEvent struct {
	AbsTime  uint32
	Delta    uint32
	Kind     EventKind
	Note     uint8
	Velocity uint8
	Channel  uint8
}

// Encoding holds the result of one conversion pass
type Encoding struct {
	Events     []NoteEvent
	Source     string // input filename, used in rendered comments
	Resolution uint16 // SMF ticks per quarter note
}

// Count returns the number of encoded events
func (e *Encoding) Count() int {
	return len(e.Events)
}

// TotalTicks returns the absolute time of the last event, or 0 if the
// encoding is empty
func (e *Encoding) TotalTicks() uint32 {
	if len(e.Events) == 0 {
		return 0
	}
	return e.Events[len(e.Events)-1].AbsTime
}
