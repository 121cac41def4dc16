package main

import (
	"fmt"

	"github.com/at-ishikawa/kisan/internal/language"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// LanguageFlag accepts a language code or its English name.
type LanguageFlag string

// Set implements pflag.Value.
func (l *LanguageFlag) Set(v string) error {
	code, ok := language.Resolve(v)
	if !ok {
		if suggestion, found := language.Suggest(v); found {
			return fmt.Errorf("invalid language %q, did you mean %q?", v, suggestion)
		}
		return fmt.Errorf("invalid language %q, valid values are %v", v, language.Codes())
	}
	*l = LanguageFlag(code)
	return nil
}

// String implements pflag.Value.
func (l *LanguageFlag) String() string {
	if l == nil {
		return ""
	}
	return string(*l)
}

// Type implements pflag.Value.
func (l *LanguageFlag) Type() string {
	return "language"
}

var (
	_ pflag.Value = (*LanguageFlag)(nil)
)

func addLanguageFlag(cmd *cobra.Command, l *LanguageFlag) {
	cmd.Flags().VarP(l, "language", "l", fmt.Sprintf("Language code or name. Options: %v. Defaults to app.language in the config", language.Codes()))
}
