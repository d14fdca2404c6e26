package i18n_test

import (
	"testing"

	"github.com/typson-dev/typson/i18n"
)

func TestDefaultEnglishMessages(t *testing.T) {
	if got := i18n.T("required", nil); got != "required property missing" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := i18n.T("unknown_schema_kind", nil); got != "unknown schema kind" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestSetLanguageJapanese(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")
	if got := i18n.T("invalid_type", nil); got != "型が不正です" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestUnknownCodeFallsBackToCode(t *testing.T) {
	if got := i18n.T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "!" + code }

func TestSetTranslator(t *testing.T) {
	i18n.SetTranslator(upperTranslator{})
	defer i18n.SetTranslator(nil)
	if got := i18n.T("required", nil); got != "!required" {
		t.Fatalf("custom translator not used: %q", got)
	}
}
