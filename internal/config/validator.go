package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/at-ishikawa/kisan/internal/language"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("language", isSupportedLanguage); err != nil {
		return nil, nil, fmt.Errorf("failed to register language validation: %w", err)
	}
	if err := validate.RegisterTranslation("language", trans, func(ut ut.Translator) error {
		return ut.Add("language", "{0} must be one of {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("language", strings.TrimPrefix(fe.Namespace(), "Config."), strings.Join(language.Codes(), ", "))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register language translation: %w", err)
	}

	return validate, trans, nil
}

func isSupportedLanguage(fl validator.FieldLevel) bool {
	return language.IsSupported(fl.Field().String())
}
