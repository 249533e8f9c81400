package compare_test

import (
	"bytes"
	"encoding/json"
	"strconv"
	"testing"

	bordertax "github.com/reoring/bordertax"

	sonic "github.com/bytedance/sonic"
	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fastjson"
)

// shared fixtures

func smallUserJSON() []byte {
	return []byte(`{"id":1,"name":"Alice Johnson","email":"alice@example.com","age":30,"active":true}`)
}

// wireUser is the plain struct the third-party decoders fill.
type wireUser struct {
	ID     int32  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int32  `json:"age"`
	Active bool   `json:"active"`
}

// generateUserArray returns n users; even ids are active, age = 18 + i%60.
func generateUserArray(n int) []byte {
	var buf bytes.Buffer
	buf.Grow(n * 96)
	buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"id":`)
		buf.WriteString(strconv.Itoa(i + 1))
		buf.WriteString(`,"name":"n`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`","email":"n`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`@example.com","age":`)
		buf.WriteString(strconv.Itoa(18 + i%60))
		if i%2 == 0 {
			buf.WriteString(`,"active":true}`)
		} else {
			buf.WriteString(`,"active":false}`)
		}
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

const cmpArrayN = 10000

var (
	jsoniterNumber = jsoniter.Config{UseNumber: true}.Froze()
	sonicNumber    = sonic.Config{UseNumber: true}.Froze()
)

// ---- Small object: bytes -> typed user ----

func Benchmark_DecodeUser_bordertax_Small(b *testing.B) {
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

func Benchmark_DecodeUser_stdlib_Small(b *testing.B) {
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v wireUser
		if err := json.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeUser_gojson_Small(b *testing.B) {
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v wireUser
		if err := gojson.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeUser_jsoniter_Small(b *testing.B) {
	data := smallUserJSON()
	ji := jsoniter.ConfigCompatibleWithStandardLibrary
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v wireUser
		if err := ji.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeUser_sonic_Small(b *testing.B) {
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v wireUser
		if err := sonic.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeUser_fastjson_Small(b *testing.B) {
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	var p fastjson.Parser
	for i := 0; i < b.N; i++ {
		v, err := p.ParseBytes(data)
		if err != nil {
			b.Fatal(err)
		}
		_ = wireUser{
			ID:     int32(v.GetInt("id")),
			Name:   string(v.GetStringBytes("name")),
			Email:  string(v.GetStringBytes("email")),
			Age:    int32(v.GetInt("age")),
			Active: v.GetBool("active"),
		}
	}
}

// ---- Array: decode then total the active ages ----

// decodeLooseStdlib and friends return maps whose numbers are json.Number, usable by the indirect path.
func decodeLooseStdlib(data []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v []map[string]any
	err := dec.Decode(&v)
	return v, err
}

func decodeLooseGojson(data []byte) ([]map[string]any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v []map[string]any
	err := dec.Decode(&v)
	return v, err
}

func decodeLooseJsoniter(data []byte) ([]map[string]any, error) {
	var v []map[string]any
	err := jsoniterNumber.Unmarshal(data, &v)
	return v, err
}

func decodeLooseSonic(data []byte) ([]map[string]any, error) {
	var v []map[string]any
	err := sonicNumber.Unmarshal(data, &v)
	return v, err
}

// totalsFastjson walks the parsed tree directly, without the package.
func totalsFastjson(p *fastjson.Parser, data []byte) (totalAge, activeCount int64, err error) {
	v, err := p.ParseBytes(data)
	if err != nil {
		return 0, 0, err
	}
	items, err := v.Array()
	if err != nil {
		return 0, 0, err
	}
	for _, it := range items {
		if it.GetBool("active") {
			totalAge += int64(it.GetInt("age"))
			activeCount++
		}
	}
	return totalAge, activeCount, nil
}

func totalsBordertax(data []byte) (bordertax.Totals, error) {
	var users []bordertax.User
	if err := gojson.Unmarshal(data, &users); err != nil {
		return bordertax.Totals{}, err
	}
	return bordertax.ProcessDirect(bordertax.AsEntities(users))
}

func benchLoose(b *testing.B, decode func([]byte) ([]map[string]any, error)) {
	data := generateUserArray(cmpArrayN)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v, err := decode(data)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := bordertax.ProcessIndirect(bordertax.AsEntities(v)); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeProcess_stdlib_Array(b *testing.B)   { benchLoose(b, decodeLooseStdlib) }
func Benchmark_DecodeProcess_gojson_Array(b *testing.B)   { benchLoose(b, decodeLooseGojson) }
func Benchmark_DecodeProcess_jsoniter_Array(b *testing.B) { benchLoose(b, decodeLooseJsoniter) }
func Benchmark_DecodeProcess_sonic_Array(b *testing.B)    { benchLoose(b, decodeLooseSonic) }

func Benchmark_DecodeProcess_fastjson_Array(b *testing.B) {
	data := generateUserArray(cmpArrayN)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	var p fastjson.Parser
	for i := 0; i < b.N; i++ {
		if _, _, err := totalsFastjson(&p, data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_DecodeProcess_bordertax_Array(b *testing.B) {
	data := generateUserArray(cmpArrayN)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := totalsBordertax(data); err != nil {
			b.Fatal(err)
		}
	}
}

// All decoders must agree before their timings are comparable.
func TestDecodersAgree(t *testing.T) {
	data := generateUserArray(100)

	want, err := totalsBordertax(data)
	if err != nil {
		t.Fatal(err)
	}
	if want.ActiveCount != 50 {
		t.Fatalf("active_count=%d, want 50", want.ActiveCount)
	}

	decoders := map[string]func([]byte) ([]map[string]any, error){
		"stdlib":   decodeLooseStdlib,
		"gojson":   decodeLooseGojson,
		"jsoniter": decodeLooseJsoniter,
		"sonic":    decodeLooseSonic,
	}
	for name, decode := range decoders {
		v, err := decode(data)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		got, err := bordertax.ProcessIndirect(bordertax.AsEntities(v))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got.TotalAge != want.TotalAge || got.ActiveCount != want.ActiveCount {
			t.Fatalf("%s: got %d/%d, want %d/%d", name, got.TotalAge, got.ActiveCount, want.TotalAge, want.ActiveCount)
		}
	}

	var p fastjson.Parser
	age, count, err := totalsFastjson(&p, data)
	if err != nil {
		t.Fatal(err)
	}
	if age != want.TotalAge || count != want.ActiveCount {
		t.Fatalf("fastjson: got %d/%d", age, count)
	}
}
