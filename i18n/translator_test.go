package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("missing_member", nil); msg != "member not found" {
		t.Fatalf("expected english message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("missing_member", nil); msg == "member not found" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code echo, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("required", nil); msg != "X:required" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("required", nil); msg != "required property missing" {
		t.Fatalf("nil should restore default, got %q", msg)
	}
}

func TestTranslator_Params(t *testing.T) {
	cases := []struct {
		lang, code string
		data       map[string]string
		want       string
	}{
		{"en", "invalid_type", map[string]string{"expected": "integer", "got": "string", "detail": "ignored"}, "invalid type: expected integer, got string"},
		{"en", "overflow", map[string]string{"got": "9", "min": "0", "max": "5"}, "value out of range: 9 not in [0, 5]"},
		{"en", "required", map[string]string{"key": "age"}, "required property missing: age"},
		{"en", "missing_member", map[string]string{"member": "active", "detail": "entity is nil"}, "member not found: active (entity is nil)"},
		{"en", "parse_error", map[string]string{"detail": "unexpected EOF"}, "parse error: unexpected EOF"},
		{"en", "parse_error", map[string]string{}, "parse error"},
		{"ja", "invalid_type", map[string]string{"expected": "integer", "got": "string"}, "型が不正です: 期待 integer, 実際 string"},
		{"ja", "not_user", map[string]string{"got": "int"}, "User ではありません: 実際 int"},
	}
	defer SetLanguage("en")
	for _, tc := range cases {
		SetLanguage(tc.lang)
		if got := T(tc.code, tc.data); got != tc.want {
			t.Errorf("%s/%s: got %q, want %q", tc.lang, tc.code, got, tc.want)
		}
	}
}
