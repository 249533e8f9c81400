package bordertax

import (
	"reflect"
	"strings"
)

// ResolveStructKey resolves the member name a struct field answers to on the
// indirect path.
// Priority: bordertax:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("bordertax"); gt != "" {
		parts := strings.Split(gt, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 && i > 0 {
			return jt[:i]
		} else if i < 0 {
			return jt
		}
	}
	return sf.Name
}

// structMember finds the exported field of rv (a struct value) whose key is
// name. Fields of untagged embedded structs are promoted, outer fields winning
// over inner ones. An exact key match anywhere beats a case-insensitive one.
func structMember(rv reflect.Value, name string) (any, bool) {
	if v, ok := findStructField(rv, name, false); ok {
		return v, true
	}
	return findStructField(rv, name, true)
}

func findStructField(rv reflect.Value, name string, fold bool) (any, bool) {
	rt := rv.Type()
	var embedded []reflect.Value
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && !hasExplicitKey(sf) {
			if ev, ok := embeddedStruct(rv.Field(i)); ok {
				embedded = append(embedded, ev)
				continue
			}
		}
		key := ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		if key == name || (fold && strings.EqualFold(key, name)) {
			return rv.Field(i).Interface(), true
		}
	}
	for _, ev := range embedded {
		if v, ok := findStructField(ev, name, fold); ok {
			return v, true
		}
	}
	return nil, false
}

// hasExplicitKey reports whether sf is renamed by a tag, which stops promotion.
func hasExplicitKey(sf reflect.StructField) bool {
	if strings.Contains(sf.Tag.Get("bordertax"), "name=") {
		return true
	}
	jt := sf.Tag.Get("json")
	return jt != "" && !strings.HasPrefix(jt, ",")
}

// embeddedStruct dereferences an embedded struct or non-nil struct pointer.
func embeddedStruct(fv reflect.Value) (reflect.Value, bool) {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() || fv.Elem().Kind() != reflect.Struct {
			return reflect.Value{}, false
		}
		return fv.Elem(), true
	}
	return fv, fv.Kind() == reflect.Struct
}
