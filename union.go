package avroinfer

import "sort"

// unionKeywordOrder fixes the rendering precedence of primitive union
// branches; named branches follow, sorted by name.
var unionKeywordOrder = map[string]int{
	TypeNull:    0,
	TypeBoolean: 1,
	TypeDouble:  2,
	TypeInt:     3,
	TypeLong:    4,
	TypeString:  5,
}

// synthesizeUnion turns candidate schemas that resisted field-wise merging
// into a tagged union. Strict mode only.
//
// A record candidate is union-eligible only when it has exactly one field
// whose name names the branch type: a primitive keyword the field's value
// widens to ({"long": 12} contributes branch "long"), or "array" holding an
// array value ({"array": [12]} contributes a named array branch). Two
// single-field records that merely differ in an arbitrary field name
// ({"K": …} vs {"J": …}) are a plain type conflict, not a union; this matches
// the observed behavior of schema registries deriving Avro unions, odd as the
// asymmetry looks.
func synthesizeUnion(cands []Node, path string, mode Mode) (Node, error) {
	// Record shapes that share a field with un-unifiable types defeat
	// synthesis outright; report the offending field.
	for i, a := range cands {
		ar, ok := a.(*Record)
		if !ok {
			continue
		}
		for _, b := range cands[i+1:] {
			br, ok := b.(*Record)
			if !ok {
				continue
			}
			for k := range ar.Fields {
				fa := &ar.Fields[k]
				fb := br.fieldNamed(fa.Name)
				if fb == nil {
					continue
				}
				if _, err := unifyAt(fa.Schema, fb.Schema, childPath(path, fa.Name), mode, false); err != nil {
					return nil, issueAt(childPath(path, fa.Name), CodeInvalidStructure,
						"record shapes share field with incompatible types",
						map[string]any{"field": fa.Name})
				}
			}
		}
	}

	prims := map[string]*Primitive{}
	named := map[string]Node{}
	var bare []Node // unnamed non-record branches (arrays)

	add := func(n Node) error {
		switch t := n.(type) {
		case *Primitive:
			prims[t.Name] = t
			return nil
		case *Array:
			if t.Name == "" {
				for _, prev := range bare {
					if Render(prev) == Render(t) {
						return nil
					}
				}
				bare = append(bare, t)
				return nil
			}
			if prev, ok := named[t.Name]; ok && Render(prev) != Render(t) {
				return issueAt(path, CodeTypeConflict, "duplicate union branch name", map[string]any{"branch": t.Name})
			}
			named[t.Name] = t
			return nil
		case *Record:
			if prev, ok := named[t.Name]; ok && Render(prev) != Render(t) {
				return issueAt(path, CodeTypeConflict, "duplicate union branch name", map[string]any{"branch": t.Name})
			}
			named[t.Name] = t
			return nil
		}
		return issueAt(path, CodeTypeConflict, "no viable union branch", nil)
	}

	for _, c := range cands {
		switch t := c.(type) {
		case *Record:
			b, err := recordBranch(t, path)
			if err != nil {
				return nil, err
			}
			if err := add(b); err != nil {
				return nil, err
			}
		case *Union:
			for _, b := range t.Branches {
				if err := add(b); err != nil {
					return nil, err
				}
			}
		default:
			if err := add(c); err != nil {
				return nil, err
			}
		}
	}

	branches := make([]Node, 0, len(prims)+len(named)+len(bare))
	for _, p := range prims {
		branches = append(branches, p)
	}
	for _, n := range named {
		branches = append(branches, n)
	}
	branches = append(branches, bare...)
	sort.Slice(branches, func(i, j int) bool { return lessBranch(branches[i], branches[j]) })

	if len(branches) == 1 {
		return branches[0], nil
	}
	return &Union{Branches: branches}, nil
}

// recordBranch maps a single-field record onto the union branch its field
// name announces, or fails with type_conflict.
func recordBranch(r *Record, path string) (Node, error) {
	if len(r.Fields) != 1 {
		return nil, issueAt(path, CodeTypeConflict, "record shape cannot form a union branch", map[string]any{"record": r.Name})
	}
	f := r.Fields[0]
	if _, ok := unionKeywordOrder[f.Name]; ok {
		p, isPrim := f.Schema.(*Primitive)
		if !isPrim {
			return nil, issueAt(childPath(path, f.Name), CodeTypeConflict, "field value does not match announced branch type", map[string]any{"field": f.Name})
		}
		w, err := unifyAt(p, &Primitive{Name: f.Name}, childPath(path, f.Name), Strict, false)
		if err != nil {
			return nil, issueAt(childPath(path, f.Name), CodeTypeConflict, "field value does not widen to announced branch type", map[string]any{"field": f.Name})
		}
		wp, isPrim := w.(*Primitive)
		if !isPrim || wp.Name != f.Name {
			return nil, issueAt(childPath(path, f.Name), CodeTypeConflict, "field value does not widen to announced branch type", map[string]any{"field": f.Name})
		}
		return &Primitive{Name: f.Name}, nil
	}
	if f.Name == "array" {
		arr, isArr := f.Schema.(*Array)
		if !isArr {
			return nil, issueAt(childPath(path, f.Name), CodeTypeConflict, "field value does not match announced branch type", map[string]any{"field": f.Name})
		}
		return &Array{Item: arr.Item, Name: f.Name}, nil
	}
	return nil, issueAt(childPath(path, f.Name), CodeTypeConflict, "field name does not name a union branch type", map[string]any{"field": f.Name})
}

func lessBranch(a, b Node) bool {
	ap, aPrim := a.(*Primitive)
	bp, bPrim := b.(*Primitive)
	switch {
	case aPrim && bPrim:
		return unionKeywordOrder[ap.Name] < unionKeywordOrder[bp.Name]
	case aPrim:
		return true
	case bPrim:
		return false
	}
	an, bn := branchName(a), branchName(b)
	if an != bn {
		return an < bn
	}
	return Render(a) < Render(b)
}
