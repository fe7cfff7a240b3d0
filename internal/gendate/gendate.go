// Package gendate supplies the "generated on" value stamped into generated
// artifacts.
package gendate

import (
	"fmt"
	"strings"
	"time"
)

const (
	// OptionProvider selects the provider: default, none or fixed.
	OptionProvider = "generated-date-provider"
	// OptionDate holds the literal used by the fixed provider.
	OptionDate = "generated-date-provider-date"
)

// Layout is the format of the default provider's timestamp.
const Layout = time.RFC3339

// Mode is the provider selector.
type Mode string

const (
	ModeDefault Mode = "default"
	ModeNone    Mode = "none"
	ModeFixed   Mode = "fixed"
)

// Provider returns the generated date string.
type Provider interface {
	Date() string
	Mode() Mode
}

// ConfigError reports an invalid date provider configuration.
type ConfigError struct {
	Option string
	Msg    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("gendate: %s: %s", e.Option, e.Msg)
}

// Now is the clock used by the default provider.
var Now = time.Now

// ParseMode parses a selector value case-insensitively. The empty string is
// the default mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeDefault:
		return ModeDefault, nil
	case ModeNone, ModeFixed:
		return m, nil
	default:
		return "", &ConfigError{Option: OptionProvider, Msg: fmt.Sprintf("unknown generated date value provider type %q", s)}
	}
}

// Resolve builds the provider selected by options.
func Resolve(options map[string]string) (Provider, error) {
	mode, err := ParseMode(options[OptionProvider])
	if err != nil {
		return nil, err
	}
	switch mode {
	case ModeNone:
		return noneProvider{}, nil
	case ModeFixed:
		date, ok := options[OptionDate]
		if !ok {
			return nil, &ConfigError{
				Option: OptionDate,
				Msg: fmt.Sprintf("fixed generated date value provider is requested with %s, but the date is not specified; set %s",
					OptionProvider, OptionDate),
			}
		}
		return fixedProvider(date), nil
	default:
		return defaultProvider{now: Now}, nil
	}
}

type defaultProvider struct{ now func() time.Time }

func (p defaultProvider) Date() string { return p.now().Format(Layout) }
func (defaultProvider) Mode() Mode     { return ModeDefault }

type noneProvider struct{}

func (noneProvider) Date() string { return "" }
func (noneProvider) Mode() Mode   { return ModeNone }

type fixedProvider string

func (p fixedProvider) Date() string { return string(p) }
func (fixedProvider) Mode() Mode     { return ModeFixed }
