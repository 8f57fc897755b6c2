package encoder

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
)

// DefaultArrayName is the array identifier used when the caller does not
// supply one
const DefaultArrayName = "MIDI_DATA"

// sourceTemplate renders the packed records as C source: three comment lines
// describing the format, the PROGMEM array literal, the count and
// bytes-per-event constants, and the fixed accessor routine.
const sourceTemplate = `// MIDI data from {{ .Source }}
// Format: delta_time_high(8bit), delta_time_low(8bit), event_type(8bit), note(8bit), velocity(8bit), channel(8bit)
// event_type: 0 = note off, 1 = note on
const uint8_t {{ .ArrayName }}[] PROGMEM = {{ "{" }}{{ join ", " .Tokens }}{{ "}" }};
const uint16_t MIDI_EVENT_COUNT = {{ .Count }};
const uint8_t MIDI_BYTES_PER_EVENT = {{ .BytesPerEvent }};  // Now 6 bytes per event

// Helper function to read an event from PROGMEM
void readMidiEvent(uint16_t index, uint16_t &delta, uint8_t &type, uint8_t &note, uint8_t &velocity, uint8_t &channel) {
  uint16_t pos = index * MIDI_BYTES_PER_EVENT;
  // Combine the two delta time bytes
  delta = (pgm_read_byte(&{{ .ArrayName }}[pos]) << 8) | pgm_read_byte(&{{ .ArrayName }}[pos + 1]);
  type = pgm_read_byte(&{{ .ArrayName }}[pos + 2]);
  note = pgm_read_byte(&{{ .ArrayName }}[pos + 3]);
  velocity = pgm_read_byte(&{{ .ArrayName }}[pos + 4]);
  channel = pgm_read_byte(&{{ .ArrayName }}[pos + 5]);
}
`

var sourceTmpl = template.Must(
	template.New("source").Funcs(sprig.TxtFuncMap()).Parse(sourceTemplate))

// renderData is the template context for one rendering
type renderData struct {
	Source        string
	ArrayName     string
	Tokens        []string
	Count         int
	BytesPerEvent int
}

// Render formats an encoding as C source text ready to paste into firmware.
// It is a pure formatting pass over the packed records; the caller chooses
// where the text goes. An empty encoding renders an empty array literal and
// a zero count.
func Render(enc *Encoding, arrayName string) (string, error) {
	if arrayName == "" {
		arrayName = DefaultArrayName
	}

	data := enc.Bytes()
	tokens := make([]string, len(data))
	for i, b := range data {
		tokens[i] = fmt.Sprintf("0x%02x", b)
	}

	var sb strings.Builder
	err := sourceTmpl.Execute(&sb, renderData{
		Source:        enc.Source,
		ArrayName:     arrayName,
		Tokens:        tokens,
		Count:         enc.Count(),
		BytesPerEvent: BytesPerEvent,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render source: %w", err)
	}
	return sb.String(), nil
}
