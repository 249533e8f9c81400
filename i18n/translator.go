package i18n

// Translator retrieves localized messages for Issue codes.
// data carries the issue parameters (for example "expected", "got", "key" or
// "member") and an optional free-form "detail".
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

// Message renders "<base>: <params>" or just "<base>" when data is empty.
func (t dictTranslator) Message(code string, data map[string]string) string {
	base := t.base(code)
	if d := t.params(data); d != "" {
		return base + ": " + d
	}
	return base
}

func (t dictTranslator) params(data map[string]string) string {
	if len(data) == 0 {
		return ""
	}
	ja := t.lang == "ja"
	expected, hasExpected := data["expected"]
	got, hasGot := data["got"]
	switch {
	case hasExpected && hasGot:
		if ja {
			return "期待 " + expected + ", 実際 " + got
		}
		return "expected " + expected + ", got " + got
	case hasGot && data["min"] != "" && data["max"] != "":
		if ja {
			return got + " は [" + data["min"] + ", " + data["max"] + "] の範囲外です"
		}
		return got + " not in [" + data["min"] + ", " + data["max"] + "]"
	case data["key"] != "":
		return data["key"]
	case data["member"] != "":
		if d := data["detail"]; d != "" {
			return data["member"] + " (" + d + ")"
		}
		return data["member"]
	case hasGot:
		if ja {
			return "実際 " + got
		}
		return "got " + got
	}
	return data["detail"]
}

func (t dictTranslator) base(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "parse_error":
			return "解析エラー"
		case "required":
			return "必須プロパティが不足しています"
		case "invalid_type":
			return "型が不正です"
		case "unknown_key":
			return "未知のキーです"
		case "duplicate_key":
			return "キーが重複しています"
		case "overflow":
			return "値が範囲外です"
		case "encode_error":
			return "エンコードに失敗しました"
		case "missing_member":
			return "メンバーが見つかりません"
		case "member_type":
			return "メンバーの型が不正です"
		case "not_user":
			return "User ではありません"
		}
	default: // "en"
		switch code {
		case "parse_error":
			return "parse error"
		case "required":
			return "required property missing"
		case "invalid_type":
			return "invalid type"
		case "unknown_key":
			return "unknown key"
		case "duplicate_key":
			return "duplicate key"
		case "overflow":
			return "value out of range"
		case "encode_error":
			return "encode error"
		case "missing_member":
			return "member not found"
		case "member_type":
			return "member has unexpected type"
		case "not_user":
			return "entity is not a User"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
