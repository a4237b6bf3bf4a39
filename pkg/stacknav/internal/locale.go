package internal

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

func messageBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		files, err := fs.Glob(localeFS, "locales/*.toml")
		if err != nil {
			bundleErr = err
			return
		}
		for _, file := range files {
			if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
				bundleErr = fmt.Errorf("loading %s: %w", file, err)
				return
			}
		}
	})
	return bundle, bundleErr
}

// SupportedLanguages returns the languages with an embedded message file.
func SupportedLanguages() []language.Tag {
	b, err := messageBundle()
	if err != nil {
		return []language.Tag{language.English}
	}
	return b.LanguageTags()
}

// ParseLanguage validates a BCP 47 tag and returns the closest supported language.
func ParseLanguage(raw string) (language.Tag, error) {
	tag, err := language.Parse(raw)
	if err != nil {
		return language.English, fmt.Errorf("invalid language %q: %w", raw, err)
	}
	matcher := language.NewMatcher(SupportedLanguages())
	_, idx, _ := matcher.Match(tag)
	return SupportedLanguages()[idx], nil
}

// Localizer renders host-facing strings in one language.
// Missing messages fall back to their ID so a broken bundle never blanks the UI.
type Localizer struct {
	tag        language.Tag
	localizer  *i18n.Localizer
	missingLog sync.Once
}

// NewLocalizer returns a Localizer for lang, falling back to English.
func NewLocalizer(lang string) *Localizer {
	tag, err := ParseLanguage(lang)
	if err != nil {
		GetInternalLogger().Warn("falling back to english", "error", err)
	}

	b, err := messageBundle()
	if err != nil {
		GetInternalLogger().Error("message bundle unavailable", "error", err)
		return &Localizer{tag: tag}
	}
	return &Localizer{tag: tag, localizer: i18n.NewLocalizer(b, tag.String())}
}

// Tag returns the language in use.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Text renders the message id with optional template data.
func (l *Localizer) Text(id string, data map[string]any) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Count renders a plural message with {{.Count}} set to n.
func (l *Localizer) Count(id string, n int) string {
	return l.localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  n,
		TemplateData: map[string]any{"Count": n},
	})
}

func (l *Localizer) localize(cfg *i18n.LocalizeConfig) string {
	if l.localizer == nil {
		return cfg.MessageID
	}
	// A message missing in l.tag still renders from the default language,
	// with err set.
	msg, err := l.localizer.Localize(cfg)
	if err != nil && msg == "" {
		l.missingLog.Do(func() {
			GetInternalLogger().Warn("missing translation", "id", cfg.MessageID, "lang", l.tag.String(), "error", err)
		})
		return cfg.MessageID
	}
	return msg
}
