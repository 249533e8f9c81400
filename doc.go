// Package bordertax provides:
//
// - Small arithmetic helpers (Add, Multiply, Greet) and a stateful Calculator
// - A User record with a strict JSON wire contract (EncodeJSON/DecodeUser)
// - Two ways of aggregating user-like entities: an indirect path that resolves
//   members by name at run time and a direct path that reads typed User fields
// - Timed benchmark variants of both paths for comparing the access cost
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; token-level JSON handling lives
//   under internal/engine and source/gojson.
// - The CLI lives under cmd/bordertax; go test benchmarks under benchmarks/.
//
// Typical usage:
//
//	u := bordertax.NewUser(1, "Alice", "alice@example.com", 30, true)
//	wire, err := u.EncodeJSON()
//	back, err := bordertax.DecodeUser(wire)
//
//	totals, err := bordertax.ProcessIndirect(entities)
//	report := bordertax.BenchmarkIndirect(entities)
package bordertax
