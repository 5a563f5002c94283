// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"errors"
	"strings"
	"testing"
)

type fixedDetector string

func (d fixedDetector) Detect(string) string { return string(d) }

type panicDetector struct{}

func (panicDetector) Detect(string) string { panic("model not loaded") }

type wordList []string

func (w wordList) IsProfane(text string) bool {
	for _, bad := range w {
		if strings.Contains(strings.ToLower(text), bad) {
			return true
		}
	}
	return false
}

// recordingChecker remembers whether it was consulted.
type recordingChecker struct{ called bool }

func (r *recordingChecker) IsProfane(string) bool {
	r.called = true
	return false
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		detector Detector
		wantKind RejectKind // zero means accepted
		wantLang string
	}{
		{"one word", "cat", fixedDetector("en"), 0, "en"},
		{"three words", "  big red dog ", fixedDetector("en"), 0, "en"},
		{"russian", "привет мир", fixedDetector("ru"), 0, "ru"},
		{"empty", "", fixedDetector("en"), RejectWordCount, ""},
		{"whitespace only", " \t\n ", fixedDetector("en"), RejectWordCount, ""},
		{"four words", "one two three four", fixedDetector("en"), RejectWordCount, ""},
		{"profane", "darn it", fixedDetector("en"), RejectProfanity, ""},
		{"japanese", "こんにちは", fixedDetector("ja"), RejectLanguage, ""},
		{"undetermined", "zzz", fixedDetector(Undetermined), RejectLanguage, ""},
		{"no script", "12345", fixedDetector(""), RejectLanguage, ""},
		{"detector panics", "boom", panicDetector{}, RejectLanguage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(tt.detector, wordList{"darn"})
			verdict, err := v.Validate(tt.text)

			if tt.wantKind == 0 {
				if err != nil {
					t.Fatalf("Validate(%q) unexpected error: %v", tt.text, err)
				}
				if verdict.Language != tt.wantLang {
					t.Errorf("Language = %q, want %q", verdict.Language, tt.wantLang)
				}
				if verdict.Text != strings.TrimSpace(tt.text) {
					t.Errorf("Text = %q, want trimmed input", verdict.Text)
				}
				return
			}

			var rej *Rejection
			if !errors.As(err, &rej) {
				t.Fatalf("Validate(%q) error = %v, want *Rejection", tt.text, err)
			}
			if rej.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", rej.Kind, tt.wantKind)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Error("rejection should wrap ErrInvalidInput")
			}
		})
	}
}

func TestValidateOrder(t *testing.T) {
	// word count is checked before profanity
	checker := &recordingChecker{}
	v := NewValidator(fixedDetector("en"), checker)
	_, err := v.Validate("a b c d e")

	var rej *Rejection
	if !errors.As(err, &rej) || rej.Kind != RejectWordCount {
		t.Fatalf("want word count rejection, got %v", err)
	}
	if checker.called {
		t.Error("profanity checker should not run on a wrong word count")
	}

	// profanity is checked before language
	v = NewValidator(fixedDetector("ja"), wordList{"darn"})
	_, err = v.Validate("darn")
	if !errors.As(err, &rej) || rej.Kind != RejectProfanity {
		t.Fatalf("want profanity rejection, got %v", err)
	}
}

func TestRejectionReasons(t *testing.T) {
	v := NewValidator(fixedDetector("xx"), wordList{"darn"})

	cases := map[string]string{
		"":                   ReasonWordCount,
		"darn":               ReasonProfanity,
		"hello":              ReasonLanguage,
		"one two three four": ReasonWordCount,
	}
	for text, want := range cases {
		_, err := v.Validate(text)
		if err == nil || err.Error() != want {
			t.Errorf("Validate(%q) = %v, want %q", text, err, want)
		}
	}
}

func TestRejectKindString(t *testing.T) {
	if RejectProfanity.String() != "profanity" {
		t.Errorf("got %q", RejectProfanity.String())
	}
	if RejectKind(0).String() != "unknown" {
		t.Errorf("got %q", RejectKind(0).String())
	}
}

func TestDefaultValidatorShortInput(t *testing.T) {
	v := NewDefaultValidator()

	tests := []struct {
		text string
		want []string // accepted languages; nil means rejected
	}{
		{"cat", []string{"en"}},
		{"dog", []string{"en"}},
		{"apple", []string{"en"}},
		{"hello world", []string{"en"}},
		{"big red dog", []string{"en"}},
		{"Hund", []string{"de"}},
		{"Katze", []string{"de"}},
		{"Straße", []string{"de"}},
		{"gato", []string{"es"}},
		{"perro", []string{"es"}},
		{"manzana", []string{"es"}},
		{"chien", []string{"fr"}},
		{"pomme", []string{"fr"}},
		{"chat noir", []string{"fr"}},
		{"gatto", []string{"it"}},
		{"cane", []string{"it"}},
		{"mela", []string{"it"}},
		{"кот", []string{"ru"}},
		{"кошка", []string{"ru"}},
		{"привет мир", []string{"ru"}},
		{"рубля", []string{"ru", "uk"}},
		{"кіт", []string{"uk"}},
		{"привіт", []string{"uk"}},
		{"собака", []string{"ru", "uk"}},
		{"こんにちは", nil},
		{"12345", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			verdict, err := v.Validate(tt.text)
			if tt.want == nil {
				var rej *Rejection
				if !errors.As(err, &rej) || rej.Kind != RejectLanguage {
					t.Fatalf("Validate(%q) = %v, want language rejection", tt.text, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%q) unexpected error: %v", tt.text, err)
			}
			for _, lang := range tt.want {
				if verdict.Language == lang {
					return
				}
			}
			t.Errorf("Validate(%q) language = %q, want one of %v", tt.text, verdict.Language, tt.want)
		})
	}
}
