// Package i18n translates user-facing messages. Catalogs live in locales/<tag>.yaml
// and are embedded at build time; English is the fallback for missing locales and keys.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultLocale is used when the caller states no supported language.
	DefaultLocale = "en"
	// AcceptLanguageHeader carries the caller's language preferences.
	AcceptLanguageHeader = "Accept-Language"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator maps message keys to text per locale.
type Translator struct {
	catalogs map[string]map[string]string
}

// NewTranslator loads the embedded catalogs. A malformed catalog is a build defect,
// so it panics rather than returning an error.
func NewTranslator() *Translator {
	catalogs, err := loadCatalogs()
	if err != nil {
		panic(err)
	}
	return &Translator{catalogs: catalogs}
}

// GetTranslator returns the process-wide translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() { defaultTranslator = NewTranslator() })
	return defaultTranslator
}

func loadCatalogs() (map[string]map[string]string, error) {
	files, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	catalogs := make(map[string]map[string]string, len(files))
	for _, f := range files {
		raw, err := localeFS.ReadFile(path.Join("locales", f.Name()))
		if err != nil {
			return nil, err
		}
		var msgs map[string]string
		if err := yaml.Unmarshal(raw, &msgs); err != nil {
			return nil, fmt.Errorf("locale %s: %w", f.Name(), err)
		}
		catalogs[strings.TrimSuffix(f.Name(), path.Ext(f.Name()))] = msgs
	}
	if _, ok := catalogs[DefaultLocale]; !ok {
		return nil, fmt.Errorf("missing %s catalog", DefaultLocale)
	}
	return catalogs, nil
}

// Locales lists the supported locale tags in sorted order.
func (t *Translator) Locales() []string {
	tags := make([]string, 0, len(t.catalogs))
	for tag := range t.catalogs {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Supports reports whether a catalog exists for locale.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.catalogs[locale]
	return ok
}

// Translate returns the text for key in locale, falling back to English and then to
// the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.catalogs[locale][key]; ok {
		return msg
	}
	if msg, ok := t.catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale picks the supported language the caller prefers most, honouring q-values
// in Accept-Language. Region subtags are ignored.
func GetLocale(c *gin.Context) string {
	return negotiate(c.GetHeader(AcceptLanguageHeader), GetTranslator())
}

func negotiate(header string, t *Translator) string {
	best, bestQ := DefaultLocale, 0.0
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		base, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(tag)), "-")
		if !t.Supports(base) {
			continue
		}
		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				continue
			}
			q = parsed
		}
		if q > bestQ {
			best, bestQ = base, q
		}
	}
	return best
}
