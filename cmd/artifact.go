package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/torqsecure/sbomgen/artifact"
	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/pretty"
)

var artifactCmd = &cobra.Command{
	Use:   "artifact",
	Short: "Work with published SBOM artifacts.",
}

var artifactUrlCmd = &cobra.Command{
	Use:   "url <identity>",
	Short: "Print a time-limited retrieval link for a published artifact.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := artifact.NewStore()
		pretty.Guard(err == nil, 9, "Artifact store is not available, reason: %v", err)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		location, err := store.Link(ctx, artifact.ObjectName(args[0]))
		pretty.Guard(err == nil, 9, "Could not create retrieval link, reason: %v", err)
		common.Stdout("%s\n", location)
	},
}

func init() {
	rootCmd.AddCommand(artifactCmd)
	artifactCmd.AddCommand(artifactUrlCmd)
}
