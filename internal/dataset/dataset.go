// Package dataset builds and loads the entity sequences fed to the processing
// paths.
package dataset

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	bordertax "github.com/reoring/bordertax"
	"github.com/reoring/bordertax/internal/config"
)

var firstNames = []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi", "Ivan", "Judy"}

// Generate returns d.Size deterministic users for d.Seed.
func Generate(d config.Dataset) []bordertax.User {
	r := rand.New(rand.NewPCG(d.Seed, d.Seed^0x9e3779b97f4a7c15))
	users := make([]bordertax.User, 0, d.Size)
	for i := 0; i < d.Size; i++ {
		name := firstNames[r.IntN(len(firstNames))]
		users = append(users, bordertax.NewUser(
			int32(i+1),
			name,
			fmt.Sprintf("%s.%d@example.com", strings.ToLower(name), i+1),
			int32(18+r.IntN(63)),
			r.Float64() < d.ActiveRatio,
		))
	}
	return users
}

// Loose converts users into Fields entities for the indirect path. When
// malformedEvery > 0, every malformedEvery-th entity (1-based) has no active
// member.
func Loose(users []bordertax.User, malformedEvery int) []any {
	out := make([]any, 0, len(users))
	for i, u := range users {
		f := bordertax.Fields(u.AsMap())
		if malformedEvery > 0 && (i+1)%malformedEvery == 0 {
			delete(f, "active")
		}
		out = append(out, f)
	}
	return out
}

// Direct converts loose entities into Users for the direct path. Entities
// that cannot be read as a User are left out and reported in skipped.
func Direct(entities []any) (users []any, skipped []error) {
	users = make([]any, 0, len(entities))
	for i, e := range entities {
		u, err := bordertax.UserFromMembers(e)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("entity %d: %w", i, err))
			continue
		}
		users = append(users, u)
	}
	return users, skipped
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

// detect strips a trailing .zst and maps the remaining extension to a format.
func detect(path string) (f format, compressed bool, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".zst" {
		compressed = true
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	switch ext {
	case ".json":
		return formatJSON, compressed, nil
	case ".yaml", ".yml":
		return formatYAML, compressed, nil
	}
	return 0, false, fmt.Errorf("dataset: unsupported fixture extension %q", ext)
}

// Load reads a fixture holding an array of objects. Supported files are
// .json, .yaml and .yml, each optionally compressed as .zst.
func Load(path string) ([]any, error) {
	f, compressed, err := detect(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer fh.Close()

	var r io.Reader = fh
	if compressed {
		zr, err := zstd.NewReader(fh)
		if err != nil {
			return nil, fmt.Errorf("dataset: zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	}
	records, err := decode(r, f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	out := make([]any, len(records))
	for i, rec := range records {
		out[i] = bordertax.Fields(rec)
	}
	return out, nil
}

func decode(r io.Reader, f format) ([]map[string]any, error) {
	var records []map[string]any
	switch f {
	case formatJSON:
		dec := j.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&records); err != nil {
			return nil, err
		}
	case formatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && err != io.EOF {
			return nil, err
		}
	}
	return records, nil
}

// Save writes users as an array of wire objects in the format implied by path.
func Save(path string, users []bordertax.User) error {
	f, compressed, err := detect(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	switch f {
	case formatJSON:
		enc := j.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(users); err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
	case formatYAML:
		maps := make([]map[string]any, len(users))
		for i, u := range users {
			maps[i] = u.AsMap()
		}
		if err := yaml.NewEncoder(&buf).Encode(maps); err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
	}
	data := buf.Bytes()
	if compressed {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return fmt.Errorf("dataset: zstd: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		if err := enc.Close(); err != nil {
			return fmt.Errorf("dataset: zstd: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
