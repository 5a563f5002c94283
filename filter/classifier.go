// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"bufio"
	"embed"
	"slices"
	"strings"
	"sync"
	"unicode"

	goaway "github.com/TwiN/go-away"
	"github.com/abadojack/whatlanggo"
	"github.com/pemistahl/lingua-go"
)

// Detector guesses the language of a piece of text. It returns an ISO 639-1
// code, or "" when the text has no recognisable language.
type Detector interface {
	Detect(text string) string
}

// ProfanityChecker reports whether text contains offensive terms.
type ProfanityChecker interface {
	IsProfane(text string) bool
}

// Undetermined is returned for text that is not in a supported language.
const Undetermined = "und"

// Supported languages in lexicon order. Ties between lexicons are broken by
// the statistical model, never by this order.
var supported = []string{"en", "ru", "es", "fr", "de", "uk", "it"}

var linguaCodes = map[lingua.Language]string{
	lingua.English:   "en",
	lingua.Russian:   "ru",
	lingua.Spanish:   "es",
	lingua.French:    "fr",
	lingua.German:    "de",
	lingua.Ukrainian: "uk",
	lingua.Italian:   "it",
}

//go:embed lexicon/*.txt
var lexiconFS embed.FS

// lexicons maps a lowercase word to every supported language listing it.
var lexicons = sync.OnceValue(func() map[string][]string {
	words := make(map[string][]string)
	for _, lang := range supported {
		f, err := lexiconFS.Open("lexicon/" + lang + ".txt")
		if err != nil {
			panic("filter: missing lexicon " + lang)
		}
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			w := strings.TrimSpace(sc.Text())
			if w == "" || strings.HasPrefix(w, "#") {
				continue
			}
			words[w] = append(words[w], lang)
		}
		f.Close()
	}
	return words
})

var statistical = sync.OnceValue(func() lingua.LanguageDetector {
	langs := make([]lingua.Language, 0, len(linguaCodes))
	for l := range linguaCodes {
		langs = append(langs, l)
	}
	return lingua.NewLanguageDetectorBuilder().FromLanguages(langs...).Build()
})

// LanguageDetector names the language of short texts. Only Latin and
// Cyrillic scripts are considered. Each known word votes for the lexicons
// it appears in; a tie or a text with no known words goes to lingua's
// n-gram model restricted to the supported languages. Results are
// deterministic for a given input.
type LanguageDetector struct{}

func NewLanguageDetector() LanguageDetector {
	return LanguageDetector{}
}

func (LanguageDetector) Detect(text string) string {
	script := whatlanggo.DetectScript(text)
	if script == nil {
		return ""
	}
	if script != unicode.Latin && script != unicode.Cyrillic {
		return Undetermined
	}

	leaders := vote(tokens(text))
	if len(leaders) == 1 {
		return leaders[0]
	}
	return statisticalGuess(text, leaders)
}

// tokens lowercases text and splits it on anything that is not a letter.
func tokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// vote returns the languages with the most lexicon hits, in supported order.
func vote(words []string) []string {
	counts := make(map[string]int, len(supported))
	dict := lexicons()
	for _, w := range words {
		for _, lang := range dict[w] {
			counts[lang]++
		}
	}

	best := 0
	var leaders []string
	for _, lang := range supported {
		switch n := counts[lang]; {
		case n == 0 || n < best:
		case n > best:
			best = n
			leaders = []string{lang}
		default:
			leaders = append(leaders, lang)
		}
	}
	return leaders
}

// statisticalGuess returns the most likely language among candidates, or
// among all supported languages when there are none.
func statisticalGuess(text string, candidates []string) string {
	for _, cv := range statistical().ComputeLanguageConfidenceValues(text) {
		if cv.Value() <= 0 {
			break
		}
		code := linguaCodes[cv.Language()]
		if len(candidates) == 0 || slices.Contains(candidates, code) {
			return code
		}
	}
	return Undetermined
}

// Russian obscenities are matched per token. Stems this short occur inside
// ordinary words (рубля, корабля), so most only count at the start of a word.
var (
	russianWholeWords = []string{"бля", "ёб", "сука", "суки", "хуй", "хуя"}

	russianPrefixes = []string{
		"хуе", "хуё", "хуйн", "нахуй", "похуй",
		"пизд",
		"ебат", "ебан", "ебал", "ебу", "ёбан", "ебл",
		"бляд", "блят",
		"сучар",
		"мудак", "мудил",
		"пидор", "пидар", "пидр",
		"залуп",
		"гандон",
		"шлюх",
		"уеб", "заеб", "выеб", "отъеб", "долбоеб", "долбоёб",
	}

	russianInfixes = []string{"пизд"}
)

func russianProfane(text string) bool {
	for _, tok := range tokens(text) {
		if slices.Contains(russianWholeWords, tok) {
			return true
		}
		for _, p := range russianPrefixes {
			if strings.HasPrefix(tok, p) {
				return true
			}
		}
		for _, s := range russianInfixes {
			if strings.Contains(tok, s) {
				return true
			}
		}
	}
	return false
}

// LexiconFilter checks text against go-away's default English dictionary
// and a Russian word list. Leetspeak and special characters are normalised
// before the English match. Accent stripping stays off because it would
// rewrite Cyrillic letters such as й.
type LexiconFilter struct {
	detector *goaway.ProfanityDetector
}

func NewProfanityFilter(extra ...string) *LexiconFilter {
	profanities := make([]string, 0, len(goaway.DefaultProfanities)+len(extra))
	profanities = append(profanities, goaway.DefaultProfanities...)
	profanities = append(profanities, extra...)

	detector := goaway.NewProfanityDetector().
		WithSanitizeLeetSpeak(true).
		WithSanitizeSpecialCharacters(true).
		WithSanitizeAccents(false).
		WithCustomDictionary(profanities, goaway.DefaultFalsePositives, goaway.DefaultFalseNegatives)

	return &LexiconFilter{detector: detector}
}

func (f *LexiconFilter) IsProfane(text string) bool {
	return f.detector.IsProfane(text) || russianProfane(text)
}
