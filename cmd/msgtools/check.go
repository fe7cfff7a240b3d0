package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"msgtools/internal/model"
	"msgtools/internal/translations"
)

var (
	checkType string
	checkFile string
	checkFail bool
)

var checkCmd = &cobra.Command{
	Use:   "check --type Name --file Name.fr.toml [patterns...]",
	Short: "Report untranslated messages in a go-i18n TOML file",
	Long: `Compare a translated go-i18n message file with the resolved catalog of one bundle
or logger. The locale is taken from the file name. Missing and untranslated keys
are listed, as are keys the catalog no longer has.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkType, "type", "t", "", "Simple or qualified name of the bundle or logger")
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Translated message file")
	checkCmd.Flags().BoolVar(&checkFail, "fail", false, "Exit non-zero when the file is incomplete")
	checkCmd.MarkFlagRequired("type")
	checkCmd.MarkFlagRequired("file")
}

func runCheck(cmd *cobra.Command, patterns []string) error {
	data, err := os.ReadFile(checkFile)
	if err != nil {
		return fmt.Errorf("failed to read translation file: %w", err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	decls, err := s.load(commandContext(cmd), patterns)
	if err != nil {
		return err
	}

	var decl *model.TypeDeclaration
	for _, d := range s.targets(decls) {
		if matchesType(d, checkType) {
			decl = d
			break
		}
	}
	if decl == nil {
		return fmt.Errorf("no bundle or logger named %q", checkType)
	}

	report, err := translations.Check(s.resolver.Resolve(decl), checkFile, data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s [%s]\n", decl.QualifiedName(), report.Locale)
	printKeys := func(label string, keys []string) {
		if len(keys) > 0 {
			fmt.Fprintf(out, "  %s (%d): %s\n", label, len(keys), strings.Join(keys, ", "))
		}
	}
	printKeys("missing", report.Missing)
	printKeys("untranslated", report.Untranslated)
	printKeys("extra", report.Extra)

	if report.Complete() {
		fmt.Fprintln(out, "  complete")
		return nil
	}
	if checkFail {
		return fmt.Errorf("%s is incomplete: %d missing, %d untranslated",
			checkFile, len(report.Missing), len(report.Untranslated))
	}
	return nil
}
