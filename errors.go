package bordertax

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Decoding of the User wire format
	CodeParseError   = "parse_error"
	CodeRequired     = "required"
	CodeInvalidType  = "invalid_type"
	CodeUnknownKey   = "unknown_key"
	CodeDuplicateKey = "duplicate_key"
	CodeOverflow     = "overflow"
	// Encoding
	CodeEncodeError = "encode_error"
	// Entity access on the processing paths
	CodeMissingMember = "missing_member"
	CodeMemberType    = "member_type"
	CodeNotUser       = "not_user"
)

// Error kinds. Use errors.Is against an error returned by this package to
// classify it; Issues maps each code onto one of these.
var (
	ErrLookupFailure = errors.New("bordertax: member lookup failed")
	ErrTypeMismatch  = errors.New("bordertax: member has unexpected type")
	ErrViewFailure   = errors.New("bordertax: entity is not a User")
	ErrDecoding      = errors.New("bordertax: decoding failed")
	ErrEncoding      = errors.New("bordertax: encoding failed")
)

// KindOf returns the error kind a code belongs to, or nil for unknown codes.
func KindOf(code string) error {
	switch code {
	case CodeParseError, CodeRequired, CodeInvalidType, CodeUnknownKey, CodeDuplicateKey, CodeOverflow:
		return ErrDecoding
	case CodeEncodeError:
		return ErrEncoding
	case CodeMissingMember:
		return ErrLookupFailure
	case CodeMemberType:
		return ErrTypeMismatch
	case CodeNotUser:
		return ErrViewFailure
	}
	return nil
}

// Issue represents a single problem found while decoding or processing.
type Issue struct {
	Path    string // JSON Pointer (for example: /3/active).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"bool","got":"string"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of problems that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /age: expected integer
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether any issue belongs to the kind target.
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		if k := KindOf(it.Code); k != nil && k == target {
			return true
		}
	}
	return false
}

// Unwrap exposes the underlying causes.
func (iss Issues) Unwrap() []error {
	var errs []error
	for _, it := range iss {
		if it.Cause != nil {
			errs = append(errs, it.Cause)
		}
	}
	return errs
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
