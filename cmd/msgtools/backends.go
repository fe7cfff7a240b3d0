package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the registered backend implementations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBackends(cmd)
	},
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(cmd *cobra.Command) error {
	r := newRegistry()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CAPABILITY\tSELECTED\tAVAILABLE")
	for _, ck := range capabilityKeys {
		names := r.Names(ck.capability)
		selected := viper.GetString(ck.key)
		if selected == "" && len(names) > 0 {
			selected = names[0]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", ck.capability, selected, strings.Join(names, ", "))
	}
	return w.Flush()
}
