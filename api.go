package avroinfer

import (
	"context"
	"fmt"
)

// Mode selects the conflict policy for one derivation call. It is threaded
// through every function rather than fixed at construction; the engine holds
// no per-call state.
type Mode int

const (
	// Strict fails fast on ambiguous or incompatible types and only widens
	// along the int < long < double ladder, synthesizing unions where record
	// shapes legitimately diverge.
	Strict Mode = iota
	// Lenient maximizes successful derivation: out-of-range integers become
	// double, booleans widen with numerics, and conflicting shapes resolve
	// to the most frequently occurring candidate.
	Lenient
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "strict" or "lenient".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	}
	return Strict, fmt.Errorf("avroinfer: unknown mode %q", s)
}

// DeriveRecord derives a record schema from an already-parsed object value.
// name becomes the top-level record name; nested records take their
// enclosing field's name.
func DeriveRecord(ctx context.Context, v *Value, name string, mode Mode) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if v == nil || v.Kind != ValueObject {
		return nil, issueAt("", CodeTypeConflict, "top-level value is not an object", nil)
	}
	return buildRecord(v, name, "", mode, MaxDepth)
}

// DeriveMessage decodes one JSON document and returns the canonical schema
// text of the derived record.
func DeriveMessage(ctx context.Context, data []byte, name string, mode Mode) (string, error) {
	v, err := DecodeValue(data)
	if err != nil {
		return "", err
	}
	rec, err := DeriveRecord(ctx, v, name, mode)
	if err != nil {
		return "", err
	}
	return Render(rec), nil
}
