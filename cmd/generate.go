package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/torqsecure/sbomgen/artifact"
	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/operations"
	"github.com/torqsecure/sbomgen/pretty"
	"github.com/torqsecure/sbomgen/scanner"
	"github.com/torqsecure/sbomgen/settings"
)

var (
	ownerFlag    string
	nameFlag     string
	refFlag      string
	callbackFlag string
	sbomIdFlag   string
	tokenFlag    string
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "produce"},
	Short:   "Generate an enriched SBOM artifact from a source repository.",
	Long: `Generate fetches a snapshot of the given repository, scans it for
components, enriches the resulting document with provenance metadata,
publishes it as a time-limited artifact, and optionally notifies a
callback endpoint about the outcome.`,
	Run: func(cmd *cobra.Command, args []string) {
		if common.DebugFlag() {
			defer common.Stopwatch("SBOM generation lasted").Report()
		}
		if len(tokenFlag) > 0 {
			os.Setenv(common.TokenVariable, tokenFlag)
		}
		request := &operations.JobRequest{
			Owner:       ownerFlag,
			Name:        nameFlag,
			Ref:         refFlag,
			CallbackURL: callbackFlag,
			SbomID:      sbomIdFlag,
		}
		engine := scanner.NewSyft()
		store, err := artifact.NewStore()
		pretty.Guard(err == nil, operations.ExitCode(operations.ErrPublish), "Artifact store is not available, reason: %v", err)

		ctx, cancel := context.WithTimeout(context.Background(), settings.Global.RunTimeout())
		defer cancel()

		watch := common.Stopwatch("run")
		result, err := operations.ProduceSbom(ctx, request, engine, store)
		elapsed := watch.Elapsed()
		pretty.Guard(err == nil, operations.ExitCode(err), "SBOM generation failed, reason: %v", err)

		if jsonFlag {
			body, err := json.MarshalIndent(result.Report, "", "  ")
			pretty.Guard(err == nil, 9, "Could not render report, reason: %v", err)
			common.Stdout("%s\n", body)
		} else {
			result.Report.Summary(result.Size, result.Location, elapsed)
		}
		pretty.Ok()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&ownerFlag, "owner", "o", "", "owner of the source repository (required)")
	generateCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "name of the source repository (required)")
	generateCmd.Flags().StringVarP(&refFlag, "ref", "r", "", "branch, tag or commit to snapshot (defaults to main)")
	generateCmd.Flags().StringVarP(&callbackFlag, "callback", "c", "", "URL to POST the completion report to")
	generateCmd.Flags().StringVarP(&sbomIdFlag, "sbom-id", "i", "", "external identifier to stamp into the document")
	generateCmd.Flags().StringVarP(&tokenFlag, "token", "t", "", "access token for fetching private repositories")
	generateCmd.MarkFlagRequired("owner")
	generateCmd.MarkFlagRequired("name")
}
