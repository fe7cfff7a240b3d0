package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"msgtools/internal/catalog"
	"msgtools/internal/gendate"
	"msgtools/internal/model"
)

var (
	catalogOutput string
	catalogType   string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [patterns...]",
	Short: "Print the resolved message catalogs",
	Long: `Resolve the message catalog of every bundle and logger interface matched by the
patterns and print it. Inherited messages are included; overrides replace the
inherited template in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCatalog(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringVarP(&catalogOutput, "output", "o", "table", "Output format: table, json or markdown")
	catalogCmd.Flags().StringVarP(&catalogType, "type", "t", "", "Only print the type with this simple or qualified name")
}

type catalogMessage struct {
	Key      string `json:"key"`
	Template string `json:"template"`
}

type catalogJSON struct {
	Type     string           `json:"type"`
	Kind     string           `json:"kind"`
	File     string           `json:"file"`
	Messages []catalogMessage `json:"messages"`
}

type catalogReport struct {
	Generated string        `json:"generated,omitempty"`
	Catalogs  []catalogJSON `json:"catalogs"`
}

func runCatalog(cmd *cobra.Command, patterns []string) error {
	switch catalogOutput {
	case "table", "json", "markdown":
	default:
		return fmt.Errorf("unknown output format %q (want table, json or markdown)", catalogOutput)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	date, err := gendate.Resolve(s.options)
	if err != nil {
		return err
	}
	decls, err := s.load(commandContext(cmd), patterns)
	if err != nil {
		return err
	}

	report := catalogReport{Generated: date.Date(), Catalogs: []catalogJSON{}}
	for _, d := range s.targets(decls) {
		if catalogType != "" && !matchesType(d, catalogType) {
			continue
		}
		report.Catalogs = append(report.Catalogs, catalogJSON{
			Type:     d.QualifiedName(),
			Kind:     s.annotations.Kind(d).String(),
			File:     d.NestedName(),
			Messages: messages(s.resolver.Resolve(d)),
		})
	}
	if catalogType != "" && len(report.Catalogs) == 0 {
		return fmt.Errorf("no bundle or logger named %q", catalogType)
	}

	out := cmd.OutOrStdout()
	switch catalogOutput {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "markdown":
		return printCatalogMarkdown(out, report)
	default:
		return printCatalogTable(out, report)
	}
}

func matchesType(d *model.TypeDeclaration, name string) bool {
	return d.Name == name || d.QualifiedName() == name || d.NestedName() == name
}

func messages(cat *catalog.Catalog) []catalogMessage {
	out := make([]catalogMessage, 0, cat.Len())
	for _, e := range cat.Entries() {
		out = append(out, catalogMessage{Key: e.Key, Template: e.Template})
	}
	return out
}

func printCatalogTable(out io.Writer, report catalogReport) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tKIND\tKEY\tTEMPLATE")
	for _, c := range report.Catalogs {
		if len(c.Messages) == 0 {
			fmt.Fprintf(w, "%s\t%s\t-\t-\n", c.Type, c.Kind)
			continue
		}
		for _, m := range c.Messages {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Type, c.Kind, m.Key, m.Template)
		}
	}
	return w.Flush()
}

func catalogMarkdown(report catalogReport) string {
	var sb strings.Builder
	sb.WriteString("# Message catalogs\n\n")
	if report.Generated != "" {
		fmt.Fprintf(&sb, "_Generated %s_\n\n", report.Generated)
	}
	for _, c := range report.Catalogs {
		fmt.Fprintf(&sb, "## %s (%s)\n\n", c.Type, c.Kind)
		if len(c.Messages) == 0 {
			sb.WriteString("No messages.\n\n")
			continue
		}
		sb.WriteString("| Key | Template |\n|---|---|\n")
		for _, m := range c.Messages {
			fmt.Fprintf(&sb, "| `%s` | %s |\n", m.Key, escapeCell(m.Template))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func printCatalogMarkdown(out io.Writer, report catalogReport) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(catalogMarkdown(report))
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(out, rendered)
	return err
}
