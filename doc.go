package avroinfer

// Package avroinfer derives Avro-style record schemas from sample JSON
// messages:
//
// - Scalar classification with int/long/double widening (strict or lenient)
// - Recursive record/array merging with deterministic field ordering
// - Strict-mode union synthesis for irreconcilable record shapes
// - Canonical schema rendering (byte-identical for equivalent inputs)
// - Batch aggregation that groups and ranks per-message schemas
//
// Design policy:
// - Keep only public APIs in the root package; the CLI lives under cmd/avroinfer.
// - The engine is stateless: mode and record name are per-call arguments,
//   never construction-time state.
// - Errors are Issues (JSON Pointer, code, message), not panics; batch
//   derivation isolates per-message failures.
//
// Typical usage:
//
//  schema, err := avroinfer.DeriveMessage(ctx, data, "record", avroinfer.Strict)
//
//  matches, err := avroinfer.DeriveMultipleMessages(ctx, msgs, avroinfer.Strict)
//  for _, m := range matches {
//      fmt.Println(m.Render(true))
//  }
