package avroinfer

import (
	"strings"

	j "github.com/goccy/go-json"
)

// Render serializes a schema node to its canonical text form. Key order is
// fixed ({"type":"record","name":…,"fields":[…]}), record fields are already
// sorted, and union branches follow keyword precedence, so identical type
// trees always render byte-identically. Grouping and round-trip comparison
// rely on that.
func Render(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch t := n.(type) {
	case *Primitive:
		writeString(b, t.Name)
	case *Array:
		b.WriteByte('{')
		if t.Name != "" {
			b.WriteString(`"name":`)
			writeString(b, t.Name)
			b.WriteByte(',')
		}
		b.WriteString(`"type":"array","items":`)
		writeNode(b, t.Item)
		b.WriteByte('}')
	case *Record:
		b.WriteString(`{"type":"record","name":`)
		writeString(b, t.Name)
		b.WriteString(`,"fields":[`)
		for i := range t.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(`{"name":`)
			writeString(b, t.Fields[i].Name)
			b.WriteString(`,"type":`)
			writeNode(b, t.Fields[i].Schema)
			b.WriteByte('}')
		}
		b.WriteString(`]}`)
	case *Union:
		b.WriteByte('[')
		for i, br := range t.Branches {
			if i > 0 {
				b.WriteByte(',')
			}
			writeNode(b, br)
		}
		b.WriteByte(']')
	}
}

// writeString emits a JSON string literal. Names come from arbitrary
// document keys, so they go through the JSON encoder rather than naive
// quoting.
func writeString(b *strings.Builder, s string) {
	enc, err := j.Marshal(s)
	if err != nil {
		// Marshal of a string cannot fail; keep a visible fallback anyway.
		b.WriteString(`""`)
		return
	}
	b.Write(enc)
}
