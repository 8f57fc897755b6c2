package encoder

import (
	"fmt"
)

// Pack serializes events into fixed 6-byte records in order:
// delta high byte, delta low byte, event kind, note, velocity, channel.
// Delta times wider than 16 bits are truncated to their low 16 bits so the
// output stays byte-compatible with existing firmware decoders, which read
// exactly two big-endian delta bytes per event.
func Pack(events []NoteEvent) []byte {
	data := make([]byte, 0, len(events)*BytesPerEvent)
	for _, ev := range events {
		data = append(data,
			byte(ev.Delta>>8),
			byte(ev.Delta),
			byte(ev.Kind),
			ev.Note,
			ev.Velocity,
			ev.Channel,
		)
	}
	return data
}

// Bytes returns the packed record stream for the encoding
func (e *Encoding) Bytes() []byte {
	return Pack(e.Events)
}

// EventAt reconstructs one event from its record in a packed byte stream.
// It mirrors the firmware-side accessor: the delta is reassembled from the
// two leading bytes, the remaining four bytes are kind, note, velocity and
// channel. AbsTime is not stored in the packed form and is left zero.
func EventAt(data []byte, index int) (NoteEvent, error) {
	pos := index * BytesPerEvent
	if index < 0 || pos+BytesPerEvent > len(data) {
		return NoteEvent{}, fmt.Errorf("event index %d out of range (%d bytes)", index, len(data))
	}
	return NoteEvent{
		Delta:    uint32(data[pos])<<8 | uint32(data[pos+1]),
		Kind:     EventKind(data[pos+2]),
		Note:     data[pos+3],
		Velocity: data[pos+4],
		Channel:  data[pos+5],
	}, nil
}

// ValidateRecords checks that a packed byte stream has a whole number of
// records and that the count constant matches it
func ValidateRecords(data []byte, count int) error {
	if len(data)%BytesPerEvent != 0 {
		return fmt.Errorf("record stream length %d is not a multiple of %d", len(data), BytesPerEvent)
	}
	if got := len(data) / BytesPerEvent; got != count {
		return fmt.Errorf("record stream holds %d events, count says %d", got, count)
	}
	return nil
}
