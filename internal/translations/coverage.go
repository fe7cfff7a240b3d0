// Package translations checks translated message files against a resolved
// catalog.
package translations

import (
	"fmt"
	"sort"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"msgtools/internal/catalog"
)

// Report lists the gaps between a translation file and a catalog.
type Report struct {
	Locale language.Tag
	// Missing keys are in the catalog but absent from the file.
	Missing []string
	// Untranslated keys are present with no translation in any plural form.
	Untranslated []string
	// Extra keys are in the file but not in the catalog, sorted.
	Extra []string
}

// Complete reports whether every catalog key is translated.
func (r *Report) Complete() bool {
	return len(r.Missing) == 0 && len(r.Untranslated) == 0
}

// Check parses data as a go-i18n message file named path (the locale comes
// from the file name, e.g. "Child.fr.toml") and compares it with cat.
func Check(cat *catalog.Catalog, path string, data []byte) (*Report, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	mf, err := bundle.ParseMessageFileBytes(data, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	byID := make(map[string]*i18n.Message, len(mf.Messages))
	for _, m := range mf.Messages {
		byID[m.ID] = m
	}

	r := &Report{Locale: mf.Tag}
	for _, key := range cat.Keys() {
		m, ok := byID[key]
		switch {
		case !ok:
			r.Missing = append(r.Missing, key)
		case !translated(m):
			r.Untranslated = append(r.Untranslated, key)
		}
		delete(byID, key)
	}
	for id := range byID {
		r.Extra = append(r.Extra, id)
	}
	sort.Strings(r.Extra)
	return r, nil
}

func translated(m *i18n.Message) bool {
	for _, s := range []string{m.Zero, m.One, m.Two, m.Few, m.Many, m.Other} {
		if s != "" {
			return true
		}
	}
	return false
}
