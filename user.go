package bordertax

import (
	"strconv"

	js "github.com/reoring/bordertax/jsonschema"
)

// UserKeys lists the User wire keys in canonical order.
var UserKeys = []string{"id", "name", "email", "age", "active"}

// User is a user record. The id is fixed at construction; every other field
// may be changed freely.
type User struct {
	id     int32
	Name   string
	Email  string
	Age    int32
	Active bool
}

// NewUser builds a User. No field is validated.
func NewUser(id int32, name, email string, age int32, active bool) User {
	return User{id: id, Name: name, Email: email, Age: age, Active: active}
}

// ID returns the user's id.
func (u User) ID() int32 { return u.id }

// AsMap returns the five fields keyed by their wire names, keeping Go types.
func (u User) AsMap() map[string]any {
	return map[string]any{
		"id":     u.id,
		"name":   u.Name,
		"email":  u.Email,
		"age":    u.Age,
		"active": u.Active,
	}
}

// CopyWith returns a new User with u's id and the given values for the rest.
func (u User) CopyWith(name, email string, age int32, active bool) User {
	return User{id: u.id, Name: name, Email: email, Age: age, Active: active}
}

// Member resolves a field by wire name, making User usable on the indirect path.
func (u User) Member(name string) (any, bool) {
	switch name {
	case "id":
		return u.id, true
	case "name":
		return u.Name, true
	case "email":
		return u.Email, true
	case "age":
		return u.Age, true
	case "active":
		return u.Active, true
	}
	return nil, false
}

// String renders "User(id=1, name='Alice', email='alice@example.com')".
func (u User) String() string {
	return "User(id=" + strconv.FormatInt(int64(u.id), 10) + ", name='" + u.Name + "', email='" + u.Email + "')"
}

// UserFromMembers builds a User out of a loosely-typed entity, reading each
// wire key through LookupMember. The first missing member or wrong-typed
// value is returned as an error.
func UserFromMembers(entity any) (User, error) {
	var u User
	p := Root()
	for _, key := range UserKeys {
		v, err := LookupMember(entity, key)
		if err != nil {
			return User{}, err
		}
		var ok bool
		switch key {
		case "id":
			u.id, ok = AsInt32(v)
		case "name":
			u.Name, ok = v.(string)
		case "email":
			u.Email, ok = v.(string)
		case "age":
			u.Age, ok = AsInt32(v)
		case "active":
			u.Active, ok = v.(bool)
		}
		if !ok {
			return User{}, mismatch(p.Field(key), userKeyTypes[key], v)
		}
	}
	return u, nil
}

var userKeyTypes = map[string]string{
	"id":     "integer",
	"name":   "string",
	"email":  "string",
	"age":    "integer",
	"active": "boolean",
}

// UserJSONSchema describes the User wire format.
func UserJSONSchema() *js.Schema {
	props := make(map[string]*js.Schema, len(UserKeys))
	for _, k := range UserKeys {
		s := &js.Schema{Type: userKeyTypes[k]}
		if s.Type == "integer" {
			s.Format = "int32"
		}
		props[k] = s
	}
	return &js.Schema{
		Schema:               js.Draft,
		Title:                "User",
		Type:                 "object",
		Properties:           props,
		Required:             append([]string(nil), UserKeys...),
		AdditionalProperties: false,
	}
}
