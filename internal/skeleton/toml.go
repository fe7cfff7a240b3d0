package skeleton

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"msgtools/internal/catalog"
	"msgtools/internal/gendate"
)

// DefaultLocale is the locale of TOML skeletons when none is configured.
const DefaultLocale = "en"

// tomlMessage mirrors a go-i18n message table.
type tomlMessage struct {
	Description string `toml:"description"`
	Other       string `toml:"other"`
}

// TOML writes go-i18n message files: one table per key holding the template
// as description and an empty "other" translation.
type TOML struct {
	Locale language.Tag
	Date   gendate.Provider
}

// NewTOML parses locale and returns a TOML format for it. The empty locale
// selects DefaultLocale.
func NewTOML(locale string, date gendate.Provider) (*TOML, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &TOML{Locale: tag, Date: date}, nil
}

func (t *TOML) Name() string      { return "toml" }
func (t *TOML) Extension() string { return "." + t.Locale.String() + ".toml" }

func (t *TOML) Write(w io.Writer, cat *catalog.Catalog) error {
	ew := &errWriter{w: w}
	if t.Date != nil {
		if date := t.Date.Date(); date != "" {
			ew.write("# Generated ", date, "\n\n")
		}
	}

	first := true
	for key, template := range cat.All() {
		// Marshal entry by entry: a whole map would be re-sorted by key.
		b, err := toml.Marshal(map[string]tomlMessage{key: {Description: template}})
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		if !first {
			ew.write("\n")
		}
		first = false
		ew.write(string(b))
	}
	return ew.err
}
