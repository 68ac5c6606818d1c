package tracelog

import (
	"bytes"
	"encoding/json"
	"unicode/utf16"
)

// Timeline maps millisecond keys to log lines and remembers the order in
// which keys were first seen.
type Timeline struct {
	keys    []string
	buckets map[string][]string
}

func NewTimeline() *Timeline {
	return &Timeline{buckets: map[string][]string{}}
}

// Append adds line to the bucket for key, creating the bucket at the end of
// the key order on first use.
func (t *Timeline) Append(key, line string) {
	bucket, exists := t.buckets[key]
	if !exists {
		t.keys = append(t.keys, key)
	}
	t.buckets[key] = append(bucket, line)
}

func (t *Timeline) Keys() []string {
	return append([]string(nil), t.keys...)
}

func (t *Timeline) Lines(key string) []string {
	return append([]string(nil), t.buckets[key]...)
}

func (t *Timeline) Len() int {
	return len(t.keys)
}

// MarshalJSON encodes the timeline as a compact ASCII-only object in key
// order without HTML escaping.
func (t *Timeline) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for keyIndex, key := range t.keys {
		if keyIndex > 0 {
			buffer.WriteByte(',')
		}
		writeJSONString(&buffer, key)
		buffer.WriteString(":[")
		for lineIndex, line := range t.buckets[key] {
			if lineIndex > 0 {
				buffer.WriteByte(',')
			}
			writeJSONString(&buffer, line)
		}
		buffer.WriteByte(']')
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// Indented returns the timeline as a JSON object indented by two spaces, with
// no trailing newline.
func (t *Timeline) Indented() ([]byte, error) {
	compact, err := t.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// writeJSONString quotes value as a JSON string using only ASCII. Runes
// outside the printable ASCII range are written as lowercase \uXXXX escapes,
// as UTF-16 surrogate pairs above the basic multilingual plane.
func writeJSONString(buffer *bytes.Buffer, value string) {
	buffer.WriteByte('"')
	for _, r := range value {
		switch r {
		case '"':
			buffer.WriteString(`\"`)
		case '\\':
			buffer.WriteString(`\\`)
		case '\n':
			buffer.WriteString(`\n`)
		case '\r':
			buffer.WriteString(`\r`)
		case '\t':
			buffer.WriteString(`\t`)
		case '\b':
			buffer.WriteString(`\b`)
		case '\f':
			buffer.WriteString(`\f`)
		default:
			if r >= 0x20 && r < 0x7f {
				buffer.WriteByte(byte(r))
				continue
			}
			if r > 0xffff {
				high, low := utf16.EncodeRune(r)
				writeUnicodeEscape(buffer, high)
				writeUnicodeEscape(buffer, low)
				continue
			}
			writeUnicodeEscape(buffer, r)
		}
	}
	buffer.WriteByte('"')
}

func writeUnicodeEscape(buffer *bytes.Buffer, r rune) {
	const hexDigits = "0123456789abcdef"
	buffer.WriteString(`\u`)
	buffer.WriteByte(hexDigits[r>>12&0xf])
	buffer.WriteByte(hexDigits[r>>8&0xf])
	buffer.WriteByte(hexDigits[r>>4&0xf])
	buffer.WriteByte(hexDigits[r&0xf])
}
