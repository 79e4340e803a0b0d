package cmd

import (
	"github.com/spf13/cobra"

	"github.com/torqsecure/sbomgen/pretty"
	"github.com/torqsecure/sbomgen/wizard"
)

var yesFlag bool

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interview the operator and write the settings file.",
	Long: `Configure walks through the endpoints and artifact store options and
writes them into the settings file under the product home. Defaults
are offered from the settings currently in effect.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := wizard.Configure(yesFlag)
		pretty.Guard(err == nil, 8, "Configuration failed, reason: %v", err)
		pretty.Ok()
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "accept defaults without prompting")
}
