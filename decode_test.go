package avroinfer_test

import (
	"strings"
	"testing"

	"github.com/reoring/avroinfer"
)

func TestDecodePreservesNumberLiterals(t *testing.T) {
	v, err := avroinfer.DecodeValue([]byte(`{"a":1e16,"b":12,"c":0.5}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Kind != avroinfer.ValueObject || len(v.Members) != 3 {
		t.Fatalf("unexpected value: %+v", v)
	}
	want := []string{"1e16", "12", "0.5"}
	for i, m := range v.Members {
		if m.Value.Kind != avroinfer.ValueNumber || m.Value.Number != want[i] {
			t.Fatalf("member %s: got %+v, want literal %s", m.Key, m.Value, want[i])
		}
	}
}

func TestDecodeKeepsMemberOrder(t *testing.T) {
	v, err := avroinfer.DecodeValue([]byte(`{"z":1,"a":2,"m":3}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var keys []string
	for _, m := range v.Members {
		keys = append(keys, m.Key)
	}
	if strings.Join(keys, ",") != "z,a,m" {
		t.Fatalf("source order lost: %v", keys)
	}
}

func TestDecodeDuplicateKey(t *testing.T) {
	_, err := avroinfer.DecodeValue([]byte(`{"a":1,"a":2}`))
	if !avroinfer.HasCode(err, avroinfer.CodeDuplicateKey) {
		t.Fatalf("want duplicate_key, got %v", err)
	}
	// Nested duplicates too.
	_, err = avroinfer.DecodeValue([]byte(`{"o":{"x":1,"x":2}}`))
	if !avroinfer.HasCode(err, avroinfer.CodeDuplicateKey) {
		t.Fatalf("nested: want duplicate_key, got %v", err)
	}
}

func TestDecodeDepthBound(t *testing.T) {
	deep := strings.Repeat("[", 600) + strings.Repeat("]", 600)
	_, err := avroinfer.DecodeValue([]byte(deep))
	if !avroinfer.HasCode(err, avroinfer.CodeMaxDepth) {
		t.Fatalf("want max_depth, got %v", err)
	}
	ok := strings.Repeat("[", 100) + "1" + strings.Repeat("]", 100)
	if _, err := avroinfer.DecodeValue([]byte(ok)); err != nil {
		t.Fatalf("100 levels should decode: %v", err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	cases := []string{``, `   `, `{"a":1} {"b":2}`, `{"a":`}
	for _, c := range cases {
		if _, err := avroinfer.DecodeValue([]byte(c)); !avroinfer.HasCode(err, avroinfer.CodeParseError) {
			t.Fatalf("%q: want parse_error, got %v", c, err)
		}
	}
}

func TestSplitMessages(t *testing.T) {
	msgs, err := avroinfer.SplitMessages([]byte(` [{"A":12}, {"A":12}, {"B":12.5}]`))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("want 3 messages, got %d", len(msgs))
	}
	if string(msgs[2]) != `{"B":12.5}` {
		t.Fatalf("unexpected raw message: %s", msgs[2])
	}

	msgs, err = avroinfer.SplitMessages([]byte(`{"A":12}`))
	if err != nil {
		t.Fatalf("split single: %v", err)
	}
	if len(msgs) != 1 || string(msgs[0]) != `{"A":12}` {
		t.Fatalf("single document should pass through: %v", msgs)
	}

	if _, err := avroinfer.SplitMessages([]byte(`   `)); !avroinfer.HasCode(err, avroinfer.CodeParseError) {
		t.Fatalf("want parse_error, got %v", err)
	}
}
