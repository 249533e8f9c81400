package engine

import (
	"errors"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// String names the JSON type a value token starts.
func (k Kind) String() string {
	switch k {
	case KindBeginObject, KindEndObject:
		return "object"
	case KindBeginArray, KindEndArray:
		return "array"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	}
	return "unknown"
}

// Token represents a streaming token. Offset is -1 when the driver cannot
// report it.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrUnexpectedToken reports a token that cannot appear at the current
// position.
var ErrUnexpectedToken = errors.New("engine: unexpected token")

// SkipValue consumes the remainder of the value started by tok. Scalars are
// already complete; containers are drained up to their matching end token.
func SkipValue(src TokenSource, tok Token) error {
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
	case KindString, KindNumber, KindBool, KindNull:
		return nil
	default:
		return ErrUnexpectedToken
	}
	depth := 1
	for depth > 0 {
		t, err := src.NextToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		switch t.Kind {
		case KindBeginObject, KindBeginArray:
			depth++
		case KindEndObject, KindEndArray:
			depth--
		}
	}
	return nil
}

// ExpectEOF returns nil when src has no further tokens.
func ExpectEOF(src TokenSource) error {
	t, err := src.NextToken()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	return &TrailingError{Kind: t.Kind}
}

// TrailingError reports data after the top-level value.
type TrailingError struct{ Kind Kind }

func (e *TrailingError) Error() string {
	return "engine: trailing " + e.Kind.String() + " after top-level value"
}

// NumberError reports a number lexeme outside the JSON grammar, such as 030 or 1.
type NumberError struct{ Lexeme string }

func (e *NumberError) Error() string { return "engine: invalid number literal " + e.Lexeme }

// ValidNumber reports whether s matches the JSON number grammar:
// -? (0 | [1-9][0-9]*) (. [0-9]+)? ([eE] [+-]? [0-9]+)?
func ValidNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		if i >= len(s) || !isDigit(s[i]) {
			return false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if i >= len(s) || !isDigit(s[i]) {
			return false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
