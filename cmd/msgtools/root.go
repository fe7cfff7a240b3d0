package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"msgtools/internal/config"
	"msgtools/internal/telemetry"
)

var exit = os.Exit
var cfgFile string

// optionOverrides holds the raw -A key=value entries; they win over every
// other configuration source.
var optionOverrides []string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "msgtools",
	Short: "Extract localizable messages from annotated Go interfaces",
	Long: `msgtools reads Go interface declarations annotated as message bundles or
message loggers, resolves their message catalogs through embedded interfaces and
writes skeletal translation files for translators to fill in.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'msgtools --help' for usage.")
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./msgtools.yaml)")
	flags.BoolP(config.KeyVerbose, "v", false, "Enable verbose/debug logging")
	flags.String(config.KeyLogFormat, "json", "Log format (json or text)")
	flags.String(config.KeyLogFile, "", "Also write logs to this file")
	flags.StringP(config.KeyDir, "C", ".", "Directory the package patterns are relative to")
	flags.Int(config.KeyWorkers, 1, "Number of files generated in parallel")
	flags.StringArrayVarP(&optionOverrides, "option", "A", nil, "Generator option key=value (repeatable)")
	flags.String(config.KeyTypeModel, "", "Type model backend (default: first registered)")
	flags.String(config.KeyAnnotations, "", "Annotation dialect backend (default: first registered)")
	flags.String(config.KeyDiagnostics, "", "Diagnostics backend (default: first registered)")
	flags.String(config.KeyMetricsFile, "", "Write Prometheus metrics to this textfile")
	flags.String(config.KeyBuildTags, "", "Comma-separated build tags for the packages backend")

	bindFlags(flags,
		config.KeyVerbose, config.KeyLogFormat, config.KeyLogFile, config.KeyDir, config.KeyWorkers,
		config.KeyTypeModel, config.KeyAnnotations, config.KeyDiagnostics, config.KeyMetricsFile, config.KeyBuildTags,
	)
}

// bindFlags binds each named flag to the viper key of the same name.
func bindFlags(flags *pflag.FlagSet, keys ...string) {
	for _, key := range keys {
		viper.BindPFlag(key, flags.Lookup(key))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}

	if err := config.ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}

	telemetry.InitLogger(viper.GetBool(config.KeyVerbose), viper.GetString(config.KeyLogFormat), viper.GetString(config.KeyLogFile))
}
