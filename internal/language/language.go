// Package language holds the fixed set of languages the assistant supports.
package language

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a supported language keyed by its two-letter code.
type Language struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

const (
	English = "en"
	Hindi   = "hi"
	Tamil   = "ta"
	Kannada = "kn"
	Telugu  = "te"
	Marathi = "mr"

	// DefaultSpeechLocale is used for codes without a speech locale.
	DefaultSpeechLocale = "en-US"

	unknownName = "Unknown"

	// maxSuggestionDistance bounds how far a typo can be from a registered code.
	maxSuggestionDistance = 2
)

var (
	supported = []Language{
		{Code: English, Name: "English"},
		{Code: Hindi, Name: "Hindi"},
		{Code: Tamil, Name: "Tamil"},
		{Code: Kannada, Name: "Kannada"},
		{Code: Telugu, Name: "Telugu"},
		{Code: Marathi, Name: "Marathi"},
	}

	speechLocales = map[string]string{
		English: "en-US",
		Hindi:   "hi-IN",
		Tamil:   "ta-IN",
		Kannada: "kn-IN",
		Telugu:  "te-IN",
		Marathi: "mr-IN",
	}
)

// All returns the supported languages in display order.
func All() []Language {
	return slices.Clone(supported)
}

// Codes returns the supported language codes in display order.
func Codes() []string {
	codes := make([]string, 0, len(supported))
	for _, l := range supported {
		codes = append(codes, l.Code)
	}
	return codes
}

func find(code string) (Language, bool) {
	for _, l := range supported {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// IsSupported reports whether code is one of the registered codes.
func IsSupported(code string) bool {
	_, ok := find(code)
	return ok
}

// Name returns the English display name of code, or "Unknown".
func Name(code string) string {
	if l, ok := find(code); ok {
		return l.Name
	}
	return unknownName
}

// SpeechLocale returns the locale tag used for speech input.
func SpeechLocale(code string) string {
	if locale, ok := speechLocales[code]; ok {
		return locale
	}
	return DefaultSpeechLocale
}

// NativeName returns how the language names itself, e.g. "ಕನ್ನಡ" for kn.
func NativeName(code string) string {
	if !IsSupported(code) {
		return unknownName
	}
	tag, err := xlanguage.Parse(code)
	if err != nil {
		return Name(code)
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return Name(code)
}

// Suggest returns the registered code closest to an unrecognized input.
func Suggest(input string) (string, bool) {
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, l := range supported {
		for _, candidate := range []string{l.Code, l.Name} {
			distance := levenshtein.ComputeDistance(strings.ToLower(input), strings.ToLower(candidate))
			if distance < bestDistance {
				best = l.Code
				bestDistance = distance
			}
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// Resolve accepts either a code or an English name and returns the code.
func Resolve(input string) (string, bool) {
	for _, l := range supported {
		if l.Code == strings.ToLower(input) || strings.ToLower(l.Name) == strings.ToLower(input) {
			return l.Code, true
		}
	}
	return "", false
}
