package bordertax

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/bordertax/internal/engine"
	"github.com/reoring/bordertax/source/gojson"
)

// userWire fixes the key order of the encoded object.
type userWire struct {
	ID     int32  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int32  `json:"age"`
	Active bool   `json:"active"`
}

func (u User) wire() userWire {
	return userWire{ID: u.id, Name: u.Name, Email: u.Email, Age: u.Age, Active: u.Active}
}

// EncodeJSON returns the compact JSON object {"id","name","email","age","active"}.
func (u User) EncodeJSON() (string, error) {
	b, err := j.Marshal(u.wire())
	if err != nil {
		return "", singleIssue(Root(), CodeEncodeError, err.Error(), err)
	}
	return string(b), nil
}

// EncodeJSONPretty returns the same object as EncodeJSON indented by two spaces.
func (u User) EncodeJSONPretty() (string, error) {
	b, err := j.MarshalIndent(u.wire(), "", "  ")
	if err != nil {
		return "", singleIssue(Root(), CodeEncodeError, err.Error(), err)
	}
	return string(b), nil
}

// MarshalJSON implements json.Marshaler with the compact encoding.
func (u User) MarshalJSON() ([]byte, error) {
	s, err := u.EncodeJSON()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalJSON implements json.Unmarshaler with the strict decoder.
func (u *User) UnmarshalJSON(data []byte) error {
	v, err := DecodeUserBytes(data)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// DecodeUser parses a User from its JSON text. See DecodeUserBytes.
func DecodeUser(s string) (User, error) { return DecodeUserBytes([]byte(s)) }

// DecodeUserReader reads r to the end and parses a User from it.
func DecodeUserReader(r io.Reader) (User, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return User{}, singleIssue(Root(), CodeParseError, err.Error(), err)
	}
	return DecodeUserBytes(data)
}

// DecodeUserBytes parses a User. The input must be a single JSON object holding
// exactly the keys id, name, email, age and active with matching types.
// Problems are returned as Issues satisfying errors.Is(err, ErrDecoding):
// syntax errors stop decoding at once, schema problems are collected.
func DecodeUserBytes(data []byte) (User, error) {
	if !j.Valid(data) {
		var probe any
		err := j.Unmarshal(data, &probe)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return User{}, singleIssue(Root(), CodeParseError, err.Error(), err)
	}
	return decodeUser(gojson.NewBytes(data))
}

func decodeUser(src eng.TokenSource) (User, error) {
	root := Root()
	tok, err := src.NextToken()
	if err != nil {
		return User{}, parseIssue(root, err)
	}
	if tok.Kind != eng.KindBeginObject {
		return User{}, singleIssue(root, CodeInvalidType, "expected object, got "+tok.Kind.String(), nil,
			"expected", "object", "got", tok.Kind.String())
	}

	var (
		u    User
		seen = make(map[string]bool, len(UserKeys))
		iss  Issues
	)
	for {
		kt, err := src.NextToken()
		if err != nil {
			return User{}, parseIssue(root, err)
		}
		if kt.Kind == eng.KindEndObject {
			break
		}
		if kt.Kind != eng.KindKey {
			return User{}, parseIssue(root, eng.ErrUnexpectedToken)
		}
		at := root.Field(kt.String)
		vt, err := src.NextToken()
		if err != nil {
			return User{}, parseIssue(at, err)
		}
		if vt.Kind == eng.KindEndObject || vt.Kind == eng.KindEndArray || vt.Kind == eng.KindKey {
			return User{}, parseIssue(at, eng.ErrUnexpectedToken)
		}

		_, known := userKeyTypes[kt.String]
		switch {
		case !known:
			iss = AppendIssues(iss, IssueAt(at, CodeUnknownKey, kt.String, "key", kt.String))
		case seen[kt.String]:
			iss = AppendIssues(iss, IssueAt(at, CodeDuplicateKey, kt.String, "key", kt.String))
		default:
			seen[kt.String] = true
			if it, ok := assignUserField(&u, at, kt.String, vt); !ok {
				iss = AppendIssues(iss, it)
			}
		}
		if err := eng.SkipValue(src, vt); err != nil {
			return User{}, parseIssue(at, err)
		}
	}
	if err := eng.ExpectEOF(src); err != nil {
		return User{}, parseIssue(root, err)
	}
	for _, k := range UserKeys {
		if !seen[k] {
			iss = AppendIssues(iss, IssueAt(root.Field(k), CodeRequired, k, "key", k))
		}
	}
	if len(iss) > 0 {
		return User{}, iss
	}
	return u, nil
}

func assignUserField(u *User, at PathRef, key string, vt eng.Token) (Issue, bool) {
	expected := userKeyTypes[key]
	switch expected {
	case "integer":
		if vt.Kind != eng.KindNumber {
			break
		}
		n, err := strconv.ParseInt(vt.Number, 10, 32)
		if err != nil {
			var ne *strconv.NumError
			if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
				return IssueAt(at, CodeOverflow, vt.Number+" does not fit int32", "min", int64(-1<<31), "max", int64(1<<31-1), "got", vt.Number), false
			}
			break
		}
		if key == "id" {
			u.id = int32(n)
		} else {
			u.Age = int32(n)
		}
		return Issue{}, true
	case "string":
		if vt.Kind != eng.KindString {
			break
		}
		if key == "name" {
			u.Name = vt.String
		} else {
			u.Email = vt.String
		}
		return Issue{}, true
	case "boolean":
		if vt.Kind != eng.KindBool {
			break
		}
		u.Active = vt.Bool
		return Issue{}, true
	}
	got := vt.Kind.String()
	if vt.Kind == eng.KindNumber {
		got = "number " + vt.Number
	}
	return IssueAt(at, CodeInvalidType, fmt.Sprintf("expected %s, got %s", expected, got), "expected", expected, "got", got), false
}

func parseIssue(p PathRef, err error) Issues {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return singleIssue(p, CodeParseError, err.Error(), err)
}
