package avroinfer

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
)

// MaxDepth caps container nesting during decoding and derivation. The decoder
// walks tokens iteratively over an explicit frame stack, so adversarial
// nesting is rejected with a max_depth issue instead of exhausting the stack.
const MaxDepth = 512

type decFrame struct {
	val     *Value
	path    string // JSON Pointer of the container
	key     string // pending object key
	haveKey bool
	seen    map[string]struct{} // object keys observed so far
}

// DecodeValue parses one JSON document into a Value tree. It enforces a
// single top-level value, unique object keys, and the nesting bound.
func DecodeValue(data []byte) (*Value, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		root  *Value
		stack []decFrame
	)

	attach := func(nv *Value) (string, error) {
		if len(stack) == 0 {
			if root != nil {
				return "", issueAt("", CodeParseError, "multiple top-level values", nil)
			}
			root = nv
			return "", nil
		}
		top := &stack[len(stack)-1]
		switch top.val.Kind {
		case ValueObject:
			p := childPath(top.path, top.key)
			top.val.Members = append(top.val.Members, Member{Key: top.key, Value: nv})
			top.haveKey = false
			return p, nil
		default: // ValueArray
			p := indexPath(top.path, len(top.val.Items))
			top.val.Items = append(top.val.Items, nv)
			return p, nil
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, issueAt("", CodeParseError, "malformed JSON: "+err.Error(), nil)
		}
		switch v := tok.(type) {
		case j.Delim:
			switch v {
			case '{', '[':
				if len(stack) >= MaxDepth {
					return nil, issueAt(stack[len(stack)-1].path, CodeMaxDepth, "nesting exceeds depth bound", map[string]any{"max": MaxDepth})
				}
				nv := &Value{Kind: ValueArray}
				if v == '{' {
					nv.Kind = ValueObject
				}
				p, err := attach(nv)
				if err != nil {
					return nil, err
				}
				f := decFrame{val: nv, path: p}
				if nv.Kind == ValueObject {
					f.seen = make(map[string]struct{})
				}
				stack = append(stack, f)
			case '}', ']':
				stack = stack[:len(stack)-1]
			}
		case string:
			if n := len(stack); n > 0 {
				top := &stack[n-1]
				if top.val.Kind == ValueObject && !top.haveKey {
					if _, dup := top.seen[v]; dup {
						return nil, issueAt(childPath(top.path, v), CodeDuplicateKey, "duplicate object key", map[string]any{"key": v})
					}
					top.seen[v] = struct{}{}
					top.key = v
					top.haveKey = true
					continue
				}
			}
			if _, err := attach(&Value{Kind: ValueString, Str: v}); err != nil {
				return nil, err
			}
		case bool:
			if _, err := attach(&Value{Kind: ValueBool, Bool: v}); err != nil {
				return nil, err
			}
		case j.Number:
			if _, err := attach(&Value{Kind: ValueNumber, Number: string(v)}); err != nil {
				return nil, err
			}
		case float64:
			// UseNumber makes this unreachable for conforming decoders; keep a
			// literal fallback regardless.
			if _, err := attach(&Value{Kind: ValueNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
				return nil, err
			}
		case nil:
			if _, err := attach(&Value{Kind: ValueNull}); err != nil {
				return nil, err
			}
		}
	}
	if len(stack) != 0 {
		return nil, issueAt(stack[len(stack)-1].path, CodeParseError, "unexpected end of input", nil)
	}
	if root == nil {
		return nil, issueAt("", CodeParseError, "empty input", nil)
	}
	return root, nil
}

// SplitMessages splits a document whose top level is a JSON array into one
// raw message per element. Any other document is returned as a single
// message. This mirrors how batch front ends feed files of sample messages
// into DeriveMultipleMessages.
func SplitMessages(data []byte) ([][]byte, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, issueAt("", CodeParseError, "empty input", nil)
	}
	if trimmed[0] != '[' {
		return [][]byte{data}, nil
	}
	var raw []j.RawMessage
	if err := j.Unmarshal(trimmed, &raw); err != nil {
		return nil, issueAt("", CodeParseError, "malformed JSON: "+err.Error(), nil)
	}
	msgs := make([][]byte, len(raw))
	for i, r := range raw {
		msgs[i] = []byte(r)
	}
	return msgs, nil
}
