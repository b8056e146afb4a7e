package avroinfer

// numericRank orders the widening ladder. Unification never narrows.
var numericRank = map[string]int{TypeInt: 0, TypeLong: 1, TypeDouble: 2}

func isNumeric(name string) bool {
	_, ok := numericRank[name]
	return ok
}

// Unify computes the least-upper-bound schema of two nodes, or fails with a
// type_conflict issue. It is symmetric. In lenient mode booleans widen with
// numerics (treated as 0/1); strict mode never crosses the boolean/numeric
// boundary.
func Unify(a, b Node, mode Mode) (Node, error) {
	n, err := unifyAt(a, b, "", mode, mode == Lenient)
	if err != nil && mode == Strict && a.Kind() == NodeRecord && b.Kind() == NodeRecord {
		// Irreconcilable record shapes may still form a legitimate union.
		return synthesizeUnion([]Node{a, b}, "", mode)
	}
	return n, err
}

// unifyAt is the internal unifier. coerceBool enables boolean-as-numeric
// widening; candidate folding keeps it off so that boolean/numeric mixes
// fall through to majority resolution instead of silently widening.
func unifyAt(a, b Node, path string, mode Mode, coerceBool bool) (Node, error) {
	ap, aIsPrim := a.(*Primitive)
	bp, bIsPrim := b.(*Primitive)

	// null is neutral on either side, against any shape.
	if aIsPrim && ap.Name == TypeNull {
		return b, nil
	}
	if bIsPrim && bp.Name == TypeNull {
		return a, nil
	}

	if aIsPrim && bIsPrim {
		return unifyPrimitives(ap, bp, path, coerceBool)
	}

	aa, aIsArr := a.(*Array)
	ba, bIsArr := b.(*Array)
	if aIsArr && bIsArr {
		item, err := unifyAt(aa.Item, ba.Item, path, mode, coerceBool)
		if err != nil {
			return nil, err
		}
		return &Array{Item: item}, nil
	}

	ar, aIsRec := a.(*Record)
	br, bIsRec := b.(*Record)
	if aIsRec && bIsRec {
		return mergeRecords(ar, br, path, mode, coerceBool)
	}

	return nil, issueAt(path, CodeTypeConflict, "incompatible types", map[string]any{
		"left":  describe(a),
		"right": describe(b),
	})
}

func unifyPrimitives(a, b *Primitive, path string, coerceBool bool) (Node, error) {
	if a.Name == b.Name {
		return a, nil
	}
	an, bn := a.Name, b.Name
	if coerceBool {
		if an == TypeBoolean && isNumeric(bn) {
			an = TypeInt
		}
		if bn == TypeBoolean && isNumeric(an) {
			bn = TypeInt
		}
	}
	if isNumeric(an) && isNumeric(bn) {
		if numericRank[an] >= numericRank[bn] {
			return &Primitive{Name: an}, nil
		}
		return &Primitive{Name: bn}, nil
	}
	return nil, issueAt(path, CodeTypeConflict, "incompatible types", map[string]any{
		"left":  a.Name,
		"right": b.Name,
	})
}

// resolveCandidates collapses the derived schemas of sibling values (array
// elements) into one schema. Both modes first fold pairwise unification; on
// conflict, strict attempts union synthesis while lenient falls back to the
// most frequently occurring candidate schema.
func resolveCandidates(cands []Node, path string, mode Mode) (Node, error) {
	if len(cands) == 0 {
		return &Primitive{Name: TypeNull}, nil
	}
	acc := cands[0]
	var foldErr error
	for _, c := range cands[1:] {
		next, err := unifyAt(acc, c, path, mode, false)
		if err != nil {
			foldErr = err
			break
		}
		acc = next
	}
	if foldErr == nil {
		return acc, nil
	}

	if mode == Strict {
		if hasRecord(cands) {
			return synthesizeUnion(cands, path, mode)
		}
		return nil, foldErr
	}
	return mostFrequent(cands, path, mode), nil
}

// mostFrequent groups candidates by rendered schema text and picks the
// largest group; ties resolve to the earliest occurrence. A tie among purely
// non-record candidates is first re-unified with boolean-as-numeric enabled,
// which is how one double plus one boolean widens to double while a boolean
// majority stays boolean.
func mostFrequent(cands []Node, path string, mode Mode) Node {
	type group struct {
		node  Node
		count int
	}
	var (
		order []string
		seen  = map[string]*group{}
	)
	for _, c := range cands {
		key := Render(c)
		g, ok := seen[key]
		if !ok {
			g = &group{node: c}
			seen[key] = g
			order = append(order, key)
		}
		g.count++
	}
	best := seen[order[0]]
	for _, key := range order[1:] {
		if g := seen[key]; g.count > best.count {
			best = g
		}
	}

	var tied []*group
	for _, key := range order {
		if seen[key].count == best.count {
			tied = append(tied, seen[key])
		}
	}
	nonRecord := true
	for _, g := range tied {
		if g.node.Kind() == NodeRecord {
			nonRecord = false
			break
		}
	}
	if len(tied) > 1 && nonRecord {
		acc := tied[0].node
		ok := true
		for _, g := range tied[1:] {
			next, err := unifyAt(acc, g.node, path, mode, true)
			if err != nil {
				ok = false
				break
			}
			acc = next
		}
		if ok {
			return acc
		}
	}
	return tied[0].node
}

func hasRecord(cands []Node) bool {
	for _, c := range cands {
		if c.Kind() == NodeRecord {
			return true
		}
	}
	return false
}

// describe names a node kind for error params.
func describe(n Node) string {
	switch t := n.(type) {
	case *Primitive:
		return t.Name
	case *Array:
		return "array"
	case *Record:
		return "record " + t.Name
	case *Union:
		return "union"
	}
	return "unknown"
}
