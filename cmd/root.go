package cmd

import (
	"github.com/spf13/cobra"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/pretty"
)

var (
	debugFlag  bool
	traceFlag  bool
	silentFlag bool
	jsonFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "sbomgen",
	Short: "sbomgen turns source repositories into enriched SBOM artifacts.",
	Long: `sbomgen fetches a repository snapshot, runs a component scanning
engine over it, enriches the resulting CycloneDX document with
provenance metadata, publishes it as a time-limited artifact, and
optionally notifies a callback endpoint about the outcome.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.DefineVerbosity(silentFlag, debugFlag, traceFlag)
		pretty.Setup()
	},
}

func Execute() {
	err := rootCmd.Execute()
	pretty.Guard(err == nil, 1, "Error: [sbomgen %v] %v", common.Version, err)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "", false, "to get debug output where available")
	rootCmd.PersistentFlags().BoolVarP(&traceFlag, "trace", "", false, "to get trace output where available (includes --debug)")
	rootCmd.PersistentFlags().BoolVarP(&silentFlag, "silent", "", false, "to reduce log output")
	rootCmd.PersistentFlags().BoolVarP(&common.NoColors, "colorless", "", false, "do not use colors in log output")
	rootCmd.PersistentFlags().BoolVarP(&jsonFlag, "json", "j", false, "output in JSON format")
}
