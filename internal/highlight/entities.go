package highlight

import "strings"

// entityTable lists the references decoded before span matching.
// Only the five HTML metacharacters are covered; other entities stay as
// authored.
var entityTable = []struct {
	ref  string
	char byte
}{
	{"&amp;", '&'},
	{"&lt;", '<'},
	{"&gt;", '>'},
	{"&quot;", '"'},
	{"&apos;", '\''},
	{"&#38;", '&'},
	{"&#60;", '<'},
	{"&#62;", '>'},
	{"&#34;", '"'},
	{"&#39;", '\''},
	{"&#x26;", '&'},
	{"&#x3c;", '<'},
	{"&#x3e;", '>'},
	{"&#x22;", '"'},
	{"&#x27;", '\''},
}

// decoded is entity-decoded text with a byte offset map back to the raw text.
// offsets[i] is the raw offset of decoded byte i; offsets[len(text)] is len(raw).
type decoded struct {
	raw     string
	text    string
	offsets []int
}

// decodeEntities decodes the references in entityTable.
func decodeEntities(raw string) decoded {
	if !strings.Contains(raw, "&") {
		offsets := make([]int, len(raw)+1)
		for i := range offsets {
			offsets[i] = i
		}
		return decoded{raw: raw, text: raw, offsets: offsets}
	}

	var b strings.Builder
	b.Grow(len(raw))
	offsets := make([]int, 0, len(raw)+1)

	for i := 0; i < len(raw); {
		if raw[i] == '&' {
			if ref, char, ok := matchEntity(raw[i:]); ok {
				b.WriteByte(char)
				offsets = append(offsets, i)
				i += len(ref)
				continue
			}
		}
		b.WriteByte(raw[i])
		offsets = append(offsets, i)
		i++
	}
	offsets = append(offsets, len(raw))

	return decoded{raw: raw, text: b.String(), offsets: offsets}
}

// matchEntity reports the reference at the start of s, if any.
// Hex references accept either case for the x and the digits.
func matchEntity(s string) (string, byte, bool) {
	for _, e := range entityTable {
		if len(s) >= len(e.ref) && strings.EqualFold(s[:len(e.ref)], e.ref) {
			return s[:len(e.ref)], e.char, true
		}
	}
	return "", 0, false
}

// rawSlice returns the raw text covering decoded bytes [start, end).
func (d decoded) rawSlice(start, end int) string {
	return d.raw[d.offsets[start]:d.offsets[end]]
}

// rawOffset maps a decoded offset to the raw text.
func (d decoded) rawOffset(i int) int {
	return d.offsets[i]
}

// decodeString returns only the decoded text.
func decodeString(s string) string {
	return decodeEntities(s).text
}
