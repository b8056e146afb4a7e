package avroinfer

import "sort"

// deriveNode derives the schema of one value. name is the synthetic type
// name carried down from the enclosing field: it names nested records and
// passes through array nesting unchanged, so two structurally distinct
// shapes under the same field name converge to the same record name.
func deriveNode(v *Value, name, path string, mode Mode, depth int) (Node, error) {
	if depth <= 0 {
		return nil, issueAt(path, CodeMaxDepth, "nesting exceeds depth bound", map[string]any{"max": MaxDepth})
	}
	switch v.Kind {
	case ValueObject:
		return buildRecord(v, name, path, mode, depth)
	case ValueArray:
		if len(v.Items) == 0 {
			// No element to classify; null is the neutral item type, so a
			// sibling non-empty array can still widen it.
			return &Array{Item: &Primitive{Name: TypeNull}}, nil
		}
		cands := make([]Node, 0, len(v.Items))
		for i, item := range v.Items {
			n, err := deriveNode(item, name, indexPath(path, i), mode, depth-1)
			if err != nil {
				return nil, err
			}
			cands = append(cands, n)
		}
		item, err := resolveCandidates(cands, path, mode)
		if err != nil {
			return nil, err
		}
		return &Array{Item: item}, nil
	default:
		return classifyScalar(v, path, mode)
	}
}

// buildRecord builds a Record from an object value. Empty record or field
// names fail with invalid_name at any depth, in both modes. Fields are kept
// in ascending byte order of name regardless of source key order; this is
// what makes rendering deterministic across differently ordered documents.
func buildRecord(v *Value, name, path string, mode Mode, depth int) (*Record, error) {
	if name == "" {
		return nil, issueAt(path, CodeInvalidName, "empty record name", nil)
	}
	rec := &Record{Name: name, Fields: make([]Field, 0, len(v.Members))}
	for _, m := range v.Members {
		if m.Key == "" {
			return nil, issueAt(path, CodeInvalidName, "empty field name", nil)
		}
		node, err := deriveNode(m.Value, m.Key, childPath(path, m.Key), mode, depth-1)
		if err != nil {
			return nil, err
		}
		rec.Fields = append(rec.Fields, Field{Name: m.Key, Schema: node})
	}
	sort.Slice(rec.Fields, func(i, j int) bool { return rec.Fields[i].Name < rec.Fields[j].Name })
	return rec, nil
}

// mergeRecords merges two record schemas by field-name union: one-sided
// fields pass through, shared fields unify recursively. Records whose field
// sets are fully disjoint do not merge; that conflict is resolved above by
// strict union synthesis or lenient majority selection.
//
// coerceBool doubles as the "direct pairwise unification" marker: only then
// does a lenient shared-field conflict resolve per field instead of failing,
// so that candidate folding still sees whole-shape conflicts and can fall
// back to majority selection over complete record shapes.
func mergeRecords(a, b *Record, path string, mode Mode, coerceBool bool) (*Record, error) {
	shared := false
	for i := range a.Fields {
		if b.fieldNamed(a.Fields[i].Name) != nil {
			shared = true
			break
		}
	}
	if !shared {
		return nil, issueAt(path, CodeTypeConflict, "disjoint record shapes", map[string]any{
			"left":  a.Name,
			"right": b.Name,
		})
	}

	merged := &Record{Name: a.Name, Fields: make([]Field, 0, len(a.Fields)+len(b.Fields))}
	for i := range a.Fields {
		fa := a.Fields[i]
		fb := b.fieldNamed(fa.Name)
		if fb == nil {
			merged.Fields = append(merged.Fields, fa)
			continue
		}
		fp := childPath(path, fa.Name)
		node, err := unifyAt(fa.Schema, fb.Schema, fp, mode, coerceBool)
		if err != nil {
			if mode == Strict || !coerceBool {
				return nil, err
			}
			node, err = resolveCandidates([]Node{fa.Schema, fb.Schema}, fp, mode)
			if err != nil {
				return nil, err
			}
		}
		merged.Fields = append(merged.Fields, Field{Name: fa.Name, Schema: node})
	}
	for i := range b.Fields {
		if a.fieldNamed(b.Fields[i].Name) == nil {
			merged.Fields = append(merged.Fields, b.Fields[i])
		}
	}
	sort.Slice(merged.Fields, func(i, j int) bool { return merged.Fields[i].Name < merged.Fields[j].Name })
	return merged, nil
}
