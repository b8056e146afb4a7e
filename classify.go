package avroinfer

import (
	"errors"
	"math"
	"strconv"
)

// classifyScalar maps one scalar value to its primitive schema type.
// Pure: the only mode-dependent behavior is out-of-range integer handling.
func classifyScalar(v *Value, path string, mode Mode) (*Primitive, error) {
	switch v.Kind {
	case ValueNull:
		return &Primitive{Name: TypeNull}, nil
	case ValueBool:
		return &Primitive{Name: TypeBoolean}, nil
	case ValueString:
		return &Primitive{Name: TypeString}, nil
	case ValueNumber:
		return classifyNumber(v, path, mode)
	}
	return nil, issueAt(path, CodeTypeConflict, "not a scalar value", nil)
}

// classifyNumber classifies off the preserved literal: any fraction or
// exponent form is double (there is no single-precision type), integral
// literals take the narrowest of int/long that holds the exact value.
// Integers beyond 64 bits fail strict derivation with overflow; lenient
// derivation accepts the precision loss and widens to double.
func classifyNumber(v *Value, path string, mode Mode) (*Primitive, error) {
	if !v.isIntegral() {
		return &Primitive{Name: TypeDouble}, nil
	}
	n, err := strconv.ParseInt(v.Number, 10, 64)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return nil, issueAt(path, CodeParseError, "malformed number literal", map[string]any{"literal": v.Number})
		}
		if mode == Strict {
			return nil, issueAt(path, CodeOverflow, "integer exceeds 64-bit range", map[string]any{"literal": v.Number})
		}
		return &Primitive{Name: TypeDouble}, nil
	}
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		return &Primitive{Name: TypeInt}, nil
	}
	return &Primitive{Name: TypeLong}, nil
}
