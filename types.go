package avroinfer

// NodeKind identifies a schema node type.
type NodeKind int

const (
	NodePrimitive NodeKind = iota
	NodeArray
	NodeRecord
	NodeUnion
)

// Primitive type names, in keyword precedence order as rendered inside unions.
const (
	TypeNull    = "null"
	TypeBoolean = "boolean"
	TypeDouble  = "double"
	TypeInt     = "int"
	TypeLong    = "long"
	TypeString  = "string"
)

// Node is the root schema node interface. A derived schema is a tree of
// Primitive, Array, Record and Union nodes; trees are built fresh per
// derivation and never shared across calls.
type Node interface {
	Kind() NodeKind
}

// Primitive represents one of the six scalar schema types.
type Primitive struct {
	Name string // "null"|"boolean"|"int"|"long"|"double"|"string"
}

func (p *Primitive) Kind() NodeKind { return NodePrimitive }

// Array represents an array with a single unified item type. Name is empty
// except when the array serves as a named union branch, in which case it
// carries the field name it was synthesized from.
type Array struct {
	Item Node
	Name string
}

func (a *Array) Kind() NodeKind { return NodeArray }

// Record represents a record with uniquely named fields, kept sorted in
// ascending byte order of field name. Nested record names are synthetic:
// a nested record is named after the field that holds it.
type Record struct {
	Name   string
	Fields []Field
}

func (r *Record) Kind() NodeKind { return NodeRecord }

// Field maps a field name to its schema.
type Field struct {
	Name   string
	Schema Node
}

// fieldNamed returns the field with the given name, or nil.
func (r *Record) fieldNamed(name string) *Field {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i]
		}
	}
	return nil
}

// Union represents a set of alternative shapes. Branches never nest another
// Union, hold at most one branch per primitive kind, and at most one branch
// per record/array name.
type Union struct {
	Branches []Node
}

func (u *Union) Kind() NodeKind { return NodeUnion }

// branchName reports the identity of a union branch: the keyword for
// primitives, the synthetic name for records and named arrays.
func branchName(n Node) string {
	switch t := n.(type) {
	case *Primitive:
		return t.Name
	case *Array:
		return t.Name
	case *Record:
		return t.Name
	}
	return ""
}
