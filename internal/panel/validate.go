package panel

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/kisan/internal/language"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	if err := v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return language.IsSupported(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register language validation: %v", err))
	}
	return v
}

type questionForm struct {
	Question string `validate:"notblank"`
	Language string `validate:"language"`
}

type cityForm struct {
	City     string `validate:"notblank"`
	Language string `validate:"language"`
}

type imageForm struct {
	Data []byte `validate:"min=1"`
}

type languageForm struct {
	Language string `validate:"language"`
}

// isValid reports whether form passes its validate tags.
func isValid(form any) bool {
	return validate.Struct(form) == nil
}

// isImage reports whether data looks like an image the backend can read.
func isImage(data []byte) (string, bool) {
	mime := mimetype.Detect(data)
	return mime.String(), strings.HasPrefix(mime.String(), "image/")
}

// languageSetting is a panel's own copy of the language. It starts from the
// shell's language and follows it through SyncLanguage.
type languageSetting struct {
	code string
}

func newLanguageSetting(code string) languageSetting {
	if !language.IsSupported(code) {
		code = language.English
	}
	return languageSetting{code: code}
}

func (l *languageSetting) Language() string {
	return l.code
}

// SetLanguage overrides the language for this panel only.
func (l *languageSetting) SetLanguage(code string) error {
	if !isValid(languageForm{Language: code}) {
		return fmt.Errorf("unsupported language %q", code)
	}
	l.code = code
	return nil
}

// SyncLanguage applies a change of the application-wide language.
func (l *languageSetting) SyncLanguage(code string) {
	if language.IsSupported(code) {
		l.code = code
	}
}

// CycleLanguage moves to the next supported language.
func (l *languageSetting) CycleLanguage() {
	codes := language.Codes()
	for i, code := range codes {
		if code == l.code {
			l.code = codes[(i+1)%len(codes)]
			return
		}
	}
	l.code = codes[0]
}
