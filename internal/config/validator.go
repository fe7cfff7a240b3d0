package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"msgtools/internal/gendate"
	"msgtools/internal/telemetry"
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	if viper.IsSet(KeyWorkers) {
		workers := viper.GetInt(KeyWorkers)
		if workers <= 0 {
			errors = append(errors, fmt.Sprintf("workers must be positive, got: %d", workers))
		}
	}

	if viper.IsSet(KeyLogFormat) {
		format := viper.GetString(KeyLogFormat)
		if !telemetry.ValidFormat(format) {
			errors = append(errors, fmt.Sprintf("log-format must be json or text, got: %q", format))
		}
	}

	if viper.IsSet(gendate.OptionProvider) {
		if _, err := gendate.ParseMode(viper.GetString(gendate.OptionProvider)); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if viper.IsSet(OptTOMLLocale) {
		locale := viper.GetString(OptTOMLLocale)
		if _, err := language.Parse(locale); err != nil {
			errors = append(errors, fmt.Sprintf("%s is not a valid locale: %q", OptTOMLLocale, locale))
		}
	}

	for _, key := range []string{KeyTypeModel, KeyAnnotations, KeyDiagnostics} {
		if viper.IsSet(key) && strings.TrimSpace(viper.GetString(key)) == "" {
			errors = append(errors, fmt.Sprintf("%s must not be empty when set", key))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
