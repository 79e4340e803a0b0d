package operations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/torqsecure/sbomgen/cloud"
	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/pretty"
)

const (
	StatusSuccess = `success`
	StatusFailed  = `failed`

	notifyTimeout = 30 * time.Second
)

// CompletionReport is the read-only summary of one pipeline run, sent
// to the callback endpoint and rendered for the operator.
type CompletionReport struct {
	SbomID         string `json:"sbom_id"`
	Status         string `json:"status"`
	RunID          string `json:"run_id"`
	ComponentCount int    `json:"component_count"`
	Repository     string `json:"repository"`
	Reference      string `json:"reference"`
}

// Notify posts the report to the callback endpoint, when one was
// given. This never escalates: transport errors, timeouts and non-2xx
// responses are logged and swallowed, with no retry.
func (it *CompletionReport) Notify(ctx context.Context, callback string) {
	if len(callback) == 0 {
		common.Trace("No callback URL given, skipping notification.")
		return
	}
	blob, err := json.Marshal(it)
	if err != nil {
		common.Uncritical("notify", err)
		return
	}
	client, err := cloud.NewClient(callback)
	if err != nil {
		common.Uncritical("notify", err)
		return
	}
	request := client.NewRequest("")
	request.Headers["Content-Type"] = "application/json"
	request.Body = bytes.NewReader(blob)
	response := client.Uncritical().WithTimeout(notifyTimeout).WithContext(ctx).Post(request)
	if response.Err != nil {
		common.Uncritical("notify", response.Err)
		return
	}
	if response.Status < 200 || response.Status >= 300 {
		common.Uncritical("notify", fmt.Errorf("callback %q answered status %d", callback, response.Status))
		return
	}
	common.Debug("Callback %q accepted completion report with status %d.", callback, response.Status)
}

// Summary renders the operator-facing run summary.
func (it *CompletionReport) Summary(size int64, location string, elapsed common.Duration) {
	color := pretty.Green
	if it.Status != StatusSuccess {
		color = pretty.Red
	}
	common.Log("----  run %s summary  ----", it.RunID)
	common.Log("Repository:  %s@%s", it.Repository, it.Reference)
	common.Log("Status:      %s%s%s", color, it.Status, pretty.Reset)
	common.Log("Components:  %d", it.ComponentCount)
	common.Log("Size:        %d bytes", size)
	if len(location) > 0 {
		common.Log("Artifact:    %s", location)
	}
	common.Log("Elapsed:     %s", elapsed)
}
