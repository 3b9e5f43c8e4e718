// Package tr loads the page translations and picks a language per request
package tr

import (
	"embed"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"serverhub/internal/types"
)

//go:embed *.yaml
var localeFS embed.FS

var localeFiles = []string{"active.en.yaml", "active.ru.yaml"}

// Translator holds the message bundle and the supported languages
type Translator struct {
	bundle    *i18n.Bundle
	supported []language.Tag
	matcher   language.Matcher
}

// NewTranslator loads the embedded bundles. defaultLocale is used when a
// request names no supported language and must itself be supported.
func NewTranslator(defaultLocale string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	for _, langFile := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, langFile); err != nil {
			return nil, fmt.Errorf("failed to load message bundle %s: %w", langFile, err)
		}
	}

	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownLocale, defaultLocale)
	}

	available := bundle.LanguageTags()
	_, idx, conf := language.NewMatcher(available).Match(fallback)
	if conf == language.No {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownLocale, defaultLocale)
	}

	// The matcher falls back to the first supported tag
	supported := []language.Tag{available[idx]}
	for i, tag := range available {
		if i != idx {
			supported = append(supported, tag)
		}
	}

	return &Translator{
		bundle:    bundle,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}, nil
}

// Default returns the fallback language
func (t *Translator) Default() language.Tag {
	return t.supported[0]
}

// Match picks the best supported language. Each argument is a language tag or
// an Accept-Language header; the first one with a match wins.
func (t *Translator) Match(prefs ...string) language.Tag {
	for _, pref := range prefs {
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := t.matcher.Match(tags...)
		if conf != language.No {
			return t.supported[idx]
		}
	}
	return t.Default()
}

// Localizer returns a localizer for the best match of prefs
func (t *Translator) Localizer(prefs ...string) *Localizer {
	tag := t.Match(prefs...)
	return &Localizer{
		Localizer: i18n.NewLocalizer(t.bundle, tag.String()),
		Tag:       tag,
	}
}

// Localizer translates messages into one language
type Localizer struct {
	*i18n.Localizer
	Tag language.Tag
}

// T translates msg, falling back to its default text
func (l *Localizer) T(msg *i18n.Message) string {
	s, err := l.Localize(&i18n.LocalizeConfig{DefaultMessage: msg})
	if err != nil {
		return msg.Other
	}
	return s
}
