package avroinfer_test

import (
	"context"
	"testing"

	"github.com/reoring/avroinfer"
)

func mustDerive(t *testing.T, msg, name string, mode avroinfer.Mode) string {
	t.Helper()
	got, err := avroinfer.DeriveMessage(context.Background(), []byte(msg), name, mode)
	if err != nil {
		t.Fatalf("derive %s: %v", mode, err)
	}
	return got
}

func TestDerivePrimitiveTypes(t *testing.T) {
	msg := `{
		"String": "John Smith",
		"LongName": 1202021021034,
		"Integer": 9999239,
		"Boolean": false,
		"Float": 1e16,
		"Double": 62323232.78901245,
		"Null": null
	}`
	want := `{"type":"record","name":"record","fields":[` +
		`{"name":"Boolean","type":"boolean"},` +
		`{"name":"Double","type":"double"},` +
		`{"name":"Float","type":"double"},` +
		`{"name":"Integer","type":"int"},` +
		`{"name":"LongName","type":"long"},` +
		`{"name":"Null","type":"null"},` +
		`{"name":"String","type":"string"}]}`

	got := mustDerive(t, msg, "record", avroinfer.Strict)
	if got != want {
		t.Fatalf("strict schema mismatch:\n got %s\nwant %s", got, want)
	}
	// Strict and lenient agree on conflict-free input.
	if got2 := mustDerive(t, msg, "record", avroinfer.Lenient); got2 != want {
		t.Fatalf("lenient schema mismatch:\n got %s\nwant %s", got2, want)
	}
}

func TestDeriveScalarFieldMix(t *testing.T) {
	got := mustDerive(t, `{"A":1,"B":1.5,"C":true}`, "record", avroinfer.Strict)
	want := `{"type":"record","name":"record","fields":[` +
		`{"name":"A","type":"int"},` +
		`{"name":"B","type":"double"},` +
		`{"name":"C","type":"boolean"}]}`
	if got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
}

func TestDeriveNumericArrayWidening(t *testing.T) {
	msg := `{
		"ArrayDouble": [1, 1.5],
		"ArrayDoubleInt": [1, 11.322, 0.2222],
		"ArrayInt": [1, 11],
		"ArrayLongInt": [1, 212121212212121, 121212124324343432],
		"ArrayLongIntDouble": [0.5, 1, 212121212212121, 121212124324343432]
	}`
	want := `{"type":"record","name":"record","fields":[` +
		`{"name":"ArrayDouble","type":{"type":"array","items":"double"}},` +
		`{"name":"ArrayDoubleInt","type":{"type":"array","items":"double"}},` +
		`{"name":"ArrayInt","type":{"type":"array","items":"int"}},` +
		`{"name":"ArrayLongInt","type":{"type":"array","items":"long"}},` +
		`{"name":"ArrayLongIntDouble","type":{"type":"array","items":"double"}}]}`
	got := mustDerive(t, msg, "record", avroinfer.Strict)
	if got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
	if got2 := mustDerive(t, msg, "record", avroinfer.Lenient); got2 != want {
		t.Fatalf("lenient diverged: %s", got2)
	}
}

func TestDeriveMergedArrayOfRecords(t *testing.T) {
	got := mustDerive(t, `{"ArrayComb":[{"K":10},{"K":10.5}]}`, "record", avroinfer.Strict)
	want := `{"type":"record","name":"record","fields":[` +
		`{"name":"ArrayComb","type":{"type":"array","items":` +
		`{"type":"record","name":"ArrayComb","fields":[{"name":"K","type":"double"}]}}}]}`
	if got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
}

func TestDeriveNestedSyntheticNames(t *testing.T) {
	// The record nested under K, two array levels down, is still named "K":
	// synthetic names come from the enclosing field and pass through arrays.
	msg := `{"ArrayComb4":[{"K":[[{"K":10}]]},{"K":[[{"K":0.5}]]},{"K":[[{"K":1}]]}]}`
	want := `{"type":"record","name":"record","fields":[` +
		`{"name":"ArrayComb4","type":{"type":"array","items":` +
		`{"type":"record","name":"ArrayComb4","fields":[` +
		`{"name":"K","type":{"type":"array","items":{"type":"array","items":` +
		`{"type":"record","name":"K","fields":[{"name":"K","type":"double"}]}}}}]}}}]}`
	got := mustDerive(t, msg, "record", avroinfer.Strict)
	if got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
}

func TestDeriveKeyOrderDeterminism(t *testing.T) {
	a := `{"name":"J","Age":13,"Date":151109,"arr":[12,45,56]}`
	b := `{"arr":[45],"Date":151109,"Age":13,"name":"J"}`
	ga := mustDerive(t, a, "record", avroinfer.Strict)
	gb := mustDerive(t, b, "record", avroinfer.Strict)
	if ga != gb {
		t.Fatalf("key order leaked into rendering:\n a %s\n b %s", ga, gb)
	}
	// Byte-identical on repeat derivation.
	if ga2 := mustDerive(t, a, "record", avroinfer.Strict); ga2 != ga {
		t.Fatalf("derivation not deterministic:\n 1 %s\n 2 %s", ga, ga2)
	}
}

func TestDeriveEmptyNames(t *testing.T) {
	cases := []string{
		`{"":[0,1]}`,
		`{"J":{"":12}}`,
		`{"J":[{"deep":{"":1}}]}`,
	}
	for _, msg := range cases {
		for _, mode := range []avroinfer.Mode{avroinfer.Strict, avroinfer.Lenient} {
			_, err := avroinfer.DeriveMessage(context.Background(), []byte(msg), "record", mode)
			if !avroinfer.HasCode(err, avroinfer.CodeInvalidName) {
				t.Fatalf("%s %s: want invalid_name, got %v", msg, mode, err)
			}
		}
	}
	if _, err := avroinfer.DeriveMessage(context.Background(), []byte(`{"A":1}`), "", avroinfer.Strict); !avroinfer.HasCode(err, avroinfer.CodeInvalidName) {
		t.Fatalf("empty top-level name: want invalid_name, got %v", err)
	}
}

func TestDeriveBigInteger(t *testing.T) {
	msg := `{"BigDataType":1202021022234434333333444444444444444444443333}`
	_, err := avroinfer.DeriveMessage(context.Background(), []byte(msg), "record", avroinfer.Strict)
	if !avroinfer.HasCode(err, avroinfer.CodeOverflow) {
		t.Fatalf("strict: want overflow, got %v", err)
	}
	got := mustDerive(t, msg, "record", avroinfer.Lenient)
	want := `{"type":"record","name":"record","fields":[{"name":"BigDataType","type":"double"}]}`
	if got != want {
		t.Fatalf("lenient: got %s\nwant %s", got, want)
	}
}

func TestDeriveStrictMixedArrayFails(t *testing.T) {
	cases := []string{
		`{"A":[0,"Java"]}`,
		`{"A":[[12,true,false]]}`,
	}
	for _, msg := range cases {
		_, err := avroinfer.DeriveMessage(context.Background(), []byte(msg), "record", avroinfer.Strict)
		if !avroinfer.HasCode(err, avroinfer.CodeTypeConflict) {
			t.Fatalf("%s: want type_conflict, got %v", msg, err)
		}
	}
}

func TestDeriveEmptyArray(t *testing.T) {
	got := mustDerive(t, `{"A":[],"B":1}`, "record", avroinfer.Strict)
	want := `{"type":"record","name":"record","fields":[` +
		`{"name":"A","type":{"type":"array","items":"null"}},` +
		`{"name":"B","type":"int"}]}`
	if got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
}

func TestDeriveNullNeutralInArrays(t *testing.T) {
	got := mustDerive(t, `{"A":[null,12,null,13.5]}`, "record", avroinfer.Strict)
	want := `{"type":"record","name":"record","fields":[` +
		`{"name":"A","type":{"type":"array","items":"double"}}]}`
	if got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
}
