// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/danielhkuo/word-sprint/models"
)

// ErrInvalidInput is wrapped by every Rejection.
var ErrInvalidInput = errors.New("invalid input")

// Word count bounds, inclusive
const (
	MinWords = 1
	MaxWords = 3
)

type RejectKind int

const (
	RejectWordCount RejectKind = iota + 1
	RejectProfanity
	RejectLanguage
)

func (k RejectKind) String() string {
	switch k {
	case RejectWordCount:
		return "word_count"
	case RejectProfanity:
		return "profanity"
	case RejectLanguage:
		return "language"
	}
	return "unknown"
}

// User-facing rejection reasons
const (
	ReasonWordCount = "Hey, send 1 to 3 words - no more, no less!"
	ReasonProfanity = "Whoa, those words! Let's keep it clean, okay?"
	ReasonLanguage  = "Is that alien code? Try real words in English, Russian, Spanish, French, German, Ukrainian or Italian!"
)

// Rejection explains why a text was refused. Reason is shown to the
// submitter as is.
type Rejection struct {
	Kind   RejectKind
	Reason string
}

func (r *Rejection) Error() string { return r.Reason }

func (r *Rejection) Unwrap() error { return ErrInvalidInput }

// Verdict is the outcome of a successful validation.
type Verdict struct {
	Text     string // trimmed input
	Words    []string
	Language string
}

type Validator struct {
	detector  Detector
	profanity ProfanityChecker
	supported map[string]bool
}

func NewValidator(detector Detector, profanity ProfanityChecker) *Validator {
	supported := make(map[string]bool, len(models.SupportedLanguages))
	for _, lang := range models.SupportedLanguages {
		supported[lang] = true
	}
	return &Validator{detector: detector, profanity: profanity, supported: supported}
}

// NewDefaultValidator wires the word-list language detector and the lexicon
// profanity filter.
func NewDefaultValidator() *Validator {
	return NewValidator(NewLanguageDetector(), NewProfanityFilter())
}

// Validate checks word count, then profanity, then language. It never
// returns an error other than a *Rejection.
func (v *Validator) Validate(text string) (Verdict, error) {
	trimmed := strings.TrimSpace(text)
	words := strings.Fields(trimmed)
	if len(words) < MinWords || len(words) > MaxWords {
		return Verdict{}, &Rejection{Kind: RejectWordCount, Reason: ReasonWordCount}
	}

	if v.profanity.IsProfane(strings.Join(words, " ")) {
		return Verdict{}, &Rejection{Kind: RejectProfanity, Reason: ReasonProfanity}
	}

	lang := v.detect(trimmed)
	if !v.supported[lang] {
		return Verdict{}, &Rejection{Kind: RejectLanguage, Reason: ReasonLanguage}
	}

	return Verdict{Text: trimmed, Words: words, Language: lang}, nil
}

// detect treats a panicking detector as "no language".
func (v *Validator) detect(text string) (lang string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("language detection failed", "text", text, "panic", r)
			lang = ""
		}
	}()
	return v.detector.Detect(text)
}
