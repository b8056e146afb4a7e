package avroinfer

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// BatchRecordName names the top-level record of every schema derived in a
// batch call, so that rendered texts group across messages.
const BatchRecordName = "Record"

// maxBatchMatches bounds how many ranked groups a strict batch reports.
const maxBatchMatches = 3

// Match is one ranked group of messages that derived the same schema.
// Lenient batch derivation returns a single Match carrying only the schema.
type Match struct {
	Schema             Node
	MessagesMatched    []int
	NumMessagesMatched int
}

// Render serializes the match. With metadata it emits
// {"schema":…,"messagesMatched":[…],"numMessagesMatched":N}; without, just
// {"schema":…}.
func (m Match) Render(includeMeta bool) string {
	var b strings.Builder
	b.WriteString(`{"schema":`)
	b.WriteString(Render(m.Schema))
	if includeMeta {
		b.WriteString(`,"messagesMatched":[`)
		for i, idx := range m.MessagesMatched {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(idx))
		}
		b.WriteString(`],"numMessagesMatched":`)
		b.WriteString(strconv.Itoa(m.NumMessagesMatched))
	}
	b.WriteByte('}')
	return b.String()
}

// DeriveMultipleMessages derives a schema per message, groups messages whose
// schemas render identically, and ranks the groups by size (ties to the
// group whose earliest message has the lowest original index).
//
// Strict mode returns up to the top three groups, each with the ordered
// original indices of its messages. Lenient mode returns only the top
// group's schema. A message that fails derivation is left unmatched and
// never aborts the batch; only when every message fails does the call error
// with no_schema_derived.
func DeriveMultipleMessages(ctx context.Context, msgs [][]byte, mode Mode) ([]Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		node Node
		text string
		err  error
	}
	results := make([]result, len(msgs))

	// Each message derives independently; results are addressed by original
	// index so completion order never influences grouping or ranking.
	var wg sync.WaitGroup
	for i, msg := range msgs {
		wg.Add(1)
		go func(i int, msg []byte) {
			defer wg.Done()
			node, err := deriveMessageNode(msg, BatchRecordName, mode)
			if err != nil {
				results[i] = result{err: err}
				return
			}
			results[i] = result{node: node, text: Render(node)}
		}(i, msg)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type group struct {
		node    Node
		indices []int
	}
	var (
		order  []string
		groups = map[string]*group{}
	)
	for i := range results {
		r := &results[i]
		if r.err != nil {
			continue
		}
		g, ok := groups[r.text]
		if !ok {
			g = &group{node: r.node}
			groups[r.text] = g
			order = append(order, r.text)
		}
		g.indices = append(g.indices, i)
	}
	if len(order) == 0 {
		return nil, issueAt("", CodeNoSchemaDerived, "no message produced a schema", map[string]any{"messages": len(msgs)})
	}

	// order is already ascending by earliest index; the stable sort keeps
	// that as the tie-break under count-descending ranking.
	sort.SliceStable(order, func(i, j int) bool {
		return len(groups[order[i]].indices) > len(groups[order[j]].indices)
	})

	if mode == Lenient {
		return []Match{{Schema: groups[order[0]].node}}, nil
	}

	n := len(order)
	if n > maxBatchMatches {
		n = maxBatchMatches
	}
	matches := make([]Match, 0, n)
	for _, key := range order[:n] {
		g := groups[key]
		matches = append(matches, Match{
			Schema:             g.node,
			MessagesMatched:    g.indices,
			NumMessagesMatched: len(g.indices),
		})
	}
	return matches, nil
}

// deriveMessageNode decodes and derives one batch message.
func deriveMessageNode(msg []byte, name string, mode Mode) (Node, error) {
	v, err := DecodeValue(msg)
	if err != nil {
		return nil, err
	}
	if v.Kind != ValueObject {
		return nil, issueAt("", CodeTypeConflict, "message is not an object", nil)
	}
	return buildRecord(v, name, "", mode, MaxDepth)
}
