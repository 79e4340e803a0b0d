package cmd

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/journal"
	"github.com/torqsecure/sbomgen/pretty"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List events from previous pipeline runs.",
	Long:  "Journal lists what happened in previous pipeline runs, newest last.",
	Run: func(cmd *cobra.Command, args []string) {
		events, err := journal.Events()
		pretty.Guard(err == nil, 9, "Could not read journal, reason: %v", err)
		if jsonFlag {
			body, err := json.MarshalIndent(events, "", "  ")
			pretty.Guard(err == nil, 9, "Could not render journal, reason: %v", err)
			common.Stdout("%s\n", body)
			return
		}
		for _, event := range events {
			when := time.Unix(event.When, 0).Format(time.RFC3339)
			common.Stdout("%s  %-10s  %s\n", when, event.Event, event.Detail)
			if len(event.Comment) > 0 {
				common.Stdout("%26s%s\n", "", event.Comment)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)
}
