package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"msgtools/internal/gendate"
)

// Configuration keys. The option keys are also the names components look up
// in the map returned by Options.
const (
	KeyVerbose     = "verbose"
	KeyLogFormat   = "log-format"
	KeyLogFile     = "log-file"
	KeyDir         = "dir"
	KeyWorkers     = "workers"
	KeyMetricsFile = "metrics-file"
	KeyTypeModel   = "typemodel"
	KeyAnnotations = "annotations"
	KeyDiagnostics = "diagnostics"
	KeyBuildTags   = "tags"

	OptTranslationFilesPath = "translation-files-path"
	OptTOMLPath             = "translation-toml-path"
	OptTOMLLocale           = "translation-toml-locale"
)

// OptionKeys lists the keys copied into the option map handed to components.
var OptionKeys = []string{
	OptTranslationFilesPath,
	OptTOMLPath,
	OptTOMLLocale,
	gendate.OptionProvider,
	gendate.OptionDate,
}

// EnvPrefix prefixes every environment variable, e.g. MSGTOOLS_WORKERS.
const EnvPrefix = "MSGTOOLS"

// Load initializes the configuration from an optional .env file, a config
// file and environment variables.
func Load(cfgFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("msgtools")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyVerbose, false)
	viper.SetDefault(KeyLogFormat, "json")
	viper.SetDefault(KeyDir, ".")
	viper.SetDefault(KeyWorkers, 1)
	viper.SetDefault(OptTOMLLocale, "en")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		return nil
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// ParseOverrides turns "key=value" entries into a map. Only the first "="
// separates, so values may contain "=" and ",". Later entries win.
func ParseOverrides(entries []string) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		key, value, ok := strings.Cut(e, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("option %q must be formatted as key=value", e)
		}
		out[key] = value
	}
	return out, nil
}

// Options returns the string option map: every OptionKeys entry that is set,
// then overrides on top. Unset keys are absent rather than empty.
func Options(overrides map[string]string) map[string]string {
	opts := make(map[string]string, len(OptionKeys)+len(overrides))
	for _, k := range OptionKeys {
		if viper.IsSet(k) {
			opts[k] = viper.GetString(k)
		}
	}
	for k, v := range overrides {
		opts[k] = v
	}
	return opts
}
