package compare_test

import (
	"encoding/json"
	"testing"

	bordertax "github.com/reoring/bordertax"
	gojson "github.com/goccy/go-json"
	jschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// compileUserSchema feeds the exported User schema to an independent validator.
func compileUserSchema(tb testing.TB) *jschema.Schema {
	tb.Helper()
	doc, err := gojson.Marshal(bordertax.UserJSONSchema())
	if err != nil {
		tb.Fatalf("marshal schema: %v", err)
	}
	s, err := jschema.CompileString("mem:user.json", string(doc))
	if err != nil {
		tb.Fatalf("compile schema: %v", err)
	}
	return s
}

// bytesToAny decodes JSON into any using the stdlib for jsonschema v5 input.
func bytesToAny(b []byte) any {
	var v any
	_ = json.Unmarshal(b, &v)
	return v
}

// The strict decoder and the published schema accept and reject the same documents.
func TestUserSchemaMatchesDecoder(t *testing.T) {
	s := compileUserSchema(t)
	cases := map[string]string{
		"valid":        `{"id":1,"name":"A","email":"a@x","age":30,"active":true}`,
		"missing":      `{"id":1,"name":"A","age":30,"active":true}`,
		"unknown key":  `{"id":1,"name":"A","email":"a@x","age":30,"active":true,"role":"x"}`,
		"string age":   `{"id":1,"name":"A","email":"a@x","age":"30","active":true}`,
		"float age":    `{"id":1,"name":"A","email":"a@x","age":30.5,"active":true}`,
		"null active":  `{"id":1,"name":"A","email":"a@x","age":30,"active":null}`,
		"array at top": `[1,2]`,
	}
	for name, doc := range cases {
		_, decErr := bordertax.DecodeUser(doc)
		valErr := s.Validate(bytesToAny([]byte(doc)))
		if (decErr == nil) != (valErr == nil) {
			t.Errorf("%s: decoder err=%v, schema err=%v", name, decErr, valErr)
		}
	}
}

// ParseAndValidateSchema: jsonschema/v5 on the small user payload.
func Benchmark_ParseAndValidateSchema_jsonschema_v5_Small(b *testing.B) {
	s := compileUserSchema(b)
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Validate(bytesToAny(data)); err != nil {
			b.Fatal(err)
		}
	}
}

// Same condition on the bordertax side: the strict decoder is the validator.
func Benchmark_ParseAndValidateSchema_bordertax_Small(b *testing.B) {
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := bordertax.DecodeUserBytes(data); err != nil {
			b.Fatal(err)
		}
	}
}
