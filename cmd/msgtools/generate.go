package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"msgtools/internal/config"
	"msgtools/internal/gendate"
	"msgtools/internal/metrics"
	"msgtools/internal/skeleton"
	"msgtools/internal/telemetry"
)

var generateCmd = &cobra.Command{
	Use:   "generate [patterns...]",
	Short: "Write skeletal translation files for annotated bundles and loggers",
	Long: `Load the packages matched by the patterns (default ./...), resolve the message
catalog of every bundle and logger interface and write one skeleton file per type.

Properties files go under translation-files-path; go-i18n TOML files go under
translation-toml-path. Either output is skipped when its path is not configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

// output is one configured skeleton format and its root directory.
type output struct {
	root   string
	format skeleton.Format
}

func runGenerate(cmd *cobra.Command, patterns []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	date, err := gendate.Resolve(s.options)
	if err != nil {
		return err
	}

	var formats []output
	if root := s.options[config.OptTranslationFilesPath]; root != "" {
		formats = append(formats, output{root, skeleton.Properties{}})
	}
	if root := s.options[config.OptTOMLPath]; root != "" {
		tf, err := skeleton.NewTOML(s.options[config.OptTOMLLocale], date)
		if err != nil {
			return fmt.Errorf("%s: %w", config.OptTOMLLocale, err)
		}
		formats = append(formats, output{root, tf})
	}
	if len(formats) == 0 {
		s.reporter.Note("No translation output path configured; nothing to generate.",
			"options", []string{config.OptTranslationFilesPath, config.OptTOMLPath})
		return nil
	}

	ctx := commandContext(cmd)
	decls, err := s.load(ctx, patterns)
	if err != nil {
		return err
	}

	m := metrics.NewMetrics()
	out := cmd.OutOrStdout()
	for _, f := range formats {
		gen := &skeleton.Generator{
			Root:     f.root,
			Format:   f.format,
			Resolver: s.resolver,
			Reporter: s.reporter,
			Metrics:  m,
			Workers:  viper.GetInt(config.KeyWorkers),
		}
		sum, err := gen.Generate(ctx, decls)
		if err != nil {
			return fmt.Errorf("generation interrupted: %w", err)
		}
		telemetry.LogInfo("Generated skeleton files.", "format", f.format.Name(), "root", f.root,
			"written", len(sum.Written), "failed", len(sum.Failed))
		fmt.Fprintf(out, "%s: wrote %d file(s) under %s\n", f.format.Name(), len(sum.Written), f.root)
		for _, fe := range sum.Failed {
			fmt.Fprintf(out, "%s: failed %s\n", f.format.Name(), fe)
		}
	}

	if path := viper.GetString(config.KeyMetricsFile); path != "" {
		if err := m.WriteTextfile(path); err != nil {
			telemetry.LogError("Failed to write metrics textfile", err, "path", path)
		}
	}
	return nil
}
