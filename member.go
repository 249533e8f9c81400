package bordertax

import (
	"fmt"
	"math"
	"reflect"
)

// Record is a loosely-typed entity whose members are resolved by name at run
// time. The boolean reports presence; the value may be of any type.
type Record interface {
	Member(name string) (any, bool)
}

// Fields is a Record backed by a map.
type Fields map[string]any

// Member implements Record.
func (f Fields) Member(name string) (any, bool) {
	v, ok := f[name]
	return v, ok
}

// LookupMember resolves name on entity. Supported entities are Records,
// map[string]any, and structs (or non-nil pointers to structs) whose exported
// fields are matched by ResolveStructKey. A missing member or any other kind
// of entity yields a missing_member issue (ErrLookupFailure).
func LookupMember(entity any, name string) (any, error) {
	return lookupAt(Root(), entity, name)
}

func lookupAt(p PathRef, entity any, name string) (any, error) {
	v, detail, ok := member(entity, name)
	if !ok {
		return nil, missingMember(p.Field(name), name, detail)
	}
	return v, nil
}

func missingMember(at PathRef, name, detail string) Issues {
	return singleIssue(at, CodeMissingMember, detail, nil, "member", name)
}

// member is the allocation-free core of LookupMember. On a miss, detail
// explains why when the entity itself was unusable.
func member(entity any, name string) (v any, detail string, ok bool) {
	if isNil(entity) {
		return nil, "entity is nil", false
	}
	switch e := entity.(type) {
	case Record:
		v, ok = e.Member(name)
		return v, "", ok
	case map[string]any:
		v, ok = e[name]
		return v, "", ok
	}

	rv := reflect.ValueOf(entity)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, "entity is nil", false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Sprintf("%T has no members", entity), false
	}
	v, ok = structMember(rv, name)
	return v, "", ok
}

func isNil(entity any) bool {
	if entity == nil {
		return true
	}
	rv := reflect.ValueOf(entity)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// int64er covers encoding/json and go-json Number values.
type int64er interface {
	Int64() (int64, error)
}

// AsInt32 converts v to int32 when it is an integer that fits. Floats are
// rejected even when integral.
func AsInt32(v any) (int32, bool) {
	var n int64
	switch x := v.(type) {
	case int32:
		return x, true
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int64:
		n = x
	case uint:
		if uint64(x) > math.MaxInt32 {
			return 0, false
		}
		n = int64(x)
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint64:
		if x > math.MaxInt32 {
			return 0, false
		}
		n = int64(x)
	case int64er:
		i, err := x.Int64()
		if err != nil {
			return 0, false
		}
		n = i
	default:
		return 0, false
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int32(n), true
}

func mismatch(p PathRef, expected string, got any) Issues {
	return singleIssue(p, CodeMemberType, fmt.Sprintf("expected %s, got %T", expected, got), nil,
		"expected", expected, "got", fmt.Sprintf("%T", got))
}
