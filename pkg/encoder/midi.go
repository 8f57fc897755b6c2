package encoder

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Converter parses MIDI data and produces the packed note-event encoding
type Converter struct {
	ticksPerQuarter uint16
}

// NewConverter creates a new MIDI converter
func NewConverter() *Converter {
	return &Converter{
		ticksPerQuarter: 480,
	}
}

// IsMIDI reports whether data looks like a standard MIDI file
func IsMIDI(data []byte) bool {
	// Check for MIDI file signature "MThd"
	return len(data) >= 4 && string(data[:4]) == "MThd"
}

// ParseFile reads a MIDI file and extracts its note events
func (c *Converter) ParseFile(filename string) (*Encoding, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read MIDI file: %w", err)
	}
	enc, err := c.Parse(data)
	if err != nil {
		return nil, err
	}
	enc.Source = filename
	return enc, nil
}

// Parse parses MIDI data and extracts its note events.
//
// Each track is walked in file order with its own running time accumulator,
// so every retained event is tagged with its track-local absolute time. Note
// on messages with velocity 0 are reclassified as note off, per the usual
// MIDI running-status convention. The per-track events are pooled, stable
// sorted by absolute time (ties keep track-then-scan order) and annotated
// with the delta from the previous event in the sorted sequence.
func (c *Converter) Parse(data []byte) (*Encoding, error) {
	reader := bytes.NewReader(data)

	s, err := smf.ReadFrom(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	// Get ticks per quarter note from time format
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		c.ticksPerQuarter = mt.Resolution()
	}

	var events []NoteEvent

	for _, track := range s.Tracks {
		var trackTime uint32
		for _, ev := range track {
			trackTime += ev.Delta

			var ch, key, vel uint8
			switch {
			case ev.Message.GetNoteOn(&ch, &key, &vel):
				kind := NoteOn
				if vel == 0 {
					kind = NoteOff
				}
				events = append(events, NoteEvent{
					AbsTime:  trackTime,
					Kind:     kind,
					Note:     key,
					Velocity: vel,
					Channel:  ch,
				})
			case ev.Message.GetNoteOff(&ch, &key, &vel):
				events = append(events, NoteEvent{
					AbsTime:  trackTime,
					Kind:     NoteOff,
					Note:     key,
					Velocity: vel,
					Channel:  ch,
				})
			}
		}
	}

	sortEvents(events)
	annotateDeltas(events)

	return &Encoding{
		Events:     events,
		Resolution: c.ticksPerQuarter,
	}, nil
}

// sortEvents orders the pooled events by absolute time. The sort is stable so
// events at the same tick keep the order the tracks were scanned in.
func sortEvents(events []NoteEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].AbsTime < events[j].AbsTime
	})
}

// annotateDeltas fills in each event's Delta as the difference from the
// previous event's absolute time in sorted order. The first event's delta is
// its own absolute time.
func annotateDeltas(events []NoteEvent) {
	var last uint32
	for i := range events {
		events[i].Delta = events[i].AbsTime - last
		last = events[i].AbsTime
	}
}
