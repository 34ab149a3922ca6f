package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates may
// reference data entries as {key}; unknown placeholders are left intact.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			tmpl = "型が不正です: {expected} が必要ですが {got} でした"
		case "invalid_instance":
			tmpl = "{expected} のインスタンスではありません: {got}"
		case "required":
			tmpl = "必須プロパティ {key} が不足しています"
		case "too_small":
			tmpl = "小さすぎます: {limit} 以上が必要ですが {got} でした"
		case "too_big":
			tmpl = "大きすぎます: {limit} 以下が必要ですが {got} でした"
		case "too_short":
			tmpl = "短すぎます: {limit} 以上の長さが必要ですが {got} でした"
		case "too_long":
			tmpl = "長すぎます: {limit} 以下の長さが必要ですが {got} でした"
		case "too_many":
			tmpl = "プロパティ {key} は高々 1 個までですが {got} 個ありました"
		case "pattern":
			tmpl = "パターン {expected} に一致しません: {got}"
		case "not_equal":
			tmpl = "{expected} と等しくありません: {got}"
		case "not_multiple_of":
			tmpl = "{step} の倍数ではありません: {got}"
		case "not_identical":
			tmpl = "参照が一致しません"
		case "none_of":
			tmpl = "どの選択肢にも一致しません: {branches}"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			tmpl = "invalid type: expected {expected}, got {got}"
		case "invalid_instance":
			tmpl = "not an instance of {expected}, got {got}"
		case "required":
			tmpl = "required property {key} missing"
		case "too_small":
			tmpl = "too small: expected at least {limit}, got {got}"
		case "too_big":
			tmpl = "too big: expected at most {limit}, got {got}"
		case "too_short":
			tmpl = "too short: expected length of at least {limit}, got {got}"
		case "too_long":
			tmpl = "too long: expected length of at most {limit}, got {got}"
		case "too_many":
			tmpl = "at most one property may match {key}, got {got}"
		case "pattern":
			tmpl = "expected match for {expected}, got {got}"
		case "not_equal":
			tmpl = "expected {expected}, got {got}"
		case "not_multiple_of":
			tmpl = "expected a multiple of {step}, got {got}"
		case "not_identical":
			tmpl = "expected the exact referenced value"
		case "none_of":
			tmpl = "no alternative matched: {branches}"
		}
	}
	if tmpl == "" {
		return code
	}
	return expand(tmpl, data)
}

func expand(tmpl string, data map[string]string) string {
	if data == nil || !strings.ContainsRune(tmpl, '{') {
		return tmpl
	}
	out := tmpl
	for k, v := range data {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
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
