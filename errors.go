package avroinfer

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeParseError       = "parse_error"
	CodeDuplicateKey     = "duplicate_key"
	CodeMaxDepth         = "max_depth"
	CodeInvalidName      = "invalid_name"
	CodeOverflow         = "overflow"
	CodeTypeConflict     = "type_conflict"
	CodeInvalidStructure = "invalid_structure"
	CodeNoSchemaDerived  = "no_schema_derived"
)

// Issue represents a single derivation error.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, offending literals, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"field":"K", "got":"boolean"})
	// for observability.
	Params map[string]any
}

// Issues is a collection of derivation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. type_conflict at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries at least one Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// issueAt creates an Issue at the given path with the provided code, message
// and params map. Convenience for call sites with many parameters.
func issueAt(path, code, msg string, params map[string]any) Issues {
	return Issues{Issue{Path: path, Code: code, Message: msg, Params: params}}
}

// childPath extends a JSON Pointer with one reference token, escaping per
// RFC 6901.
func childPath(parent, token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return parent + "/" + token
}

// indexPath extends a JSON Pointer with an array index.
func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s/%d", parent, i)
}
