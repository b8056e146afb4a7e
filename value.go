package avroinfer

// ValueKind identifies a parsed JSON value variant.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueNumber
	ValueString
	ValueArray
	ValueObject
)

// Value is a parsed JSON value tree. It is read-only input to the engine:
// derivation never mutates it.
//
// Numbers keep their literal text so that integer range checks see the exact
// magnitude rather than a lossy float64, and so that the fractional/exponent
// form survives ("1e16" classifies as double even though it is integral).
type Value struct {
	Kind    ValueKind
	Bool    bool
	Number  string // literal text, e.g. "12", "1.5", "1e16"
	Str     string
	Items   []*Value // ValueArray
	Members []Member // ValueObject, source order, keys unique
}

// Member is one key/value pair of an object, in source order.
type Member struct {
	Key   string
	Value *Value
}

// isIntegral reports whether a number literal has no fraction or exponent
// part. Callers must only use it on ValueNumber values.
func (v *Value) isIntegral() bool {
	for i := 0; i < len(v.Number); i++ {
		switch v.Number[i] {
		case '.', 'e', 'E':
			return false
		}
	}
	return true
}
