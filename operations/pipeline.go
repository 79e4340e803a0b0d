package operations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/torqsecure/sbomgen/artifact"
	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/github"
	"github.com/torqsecure/sbomgen/journal"
	"github.com/torqsecure/sbomgen/pathlib"
	"github.com/torqsecure/sbomgen/sbom"
	"github.com/torqsecure/sbomgen/scanner"
	"github.com/torqsecure/sbomgen/workspace"
)

// Result carries everything a caller wants to show about a finished
// run: the completion report, the format survey, the publish receipt
// and a bounded retrieval link.
type Result struct {
	Report   *CompletionReport
	Survey   *sbom.Survey
	Receipt  *artifact.Receipt
	Location string
	Size     int64
}

func record(stage, comment string, fields ...interface{}) {
	common.Timeline("stage %s", stage)
	err := journal.Post("stage", stage, comment, fields...)
	if err != nil {
		common.Uncritical("journal", err)
	}
}

// ProduceSbom runs one Job Request through the whole pipeline:
// validate, fetch, extract, scan, validate format, enrich, publish,
// notify. Stages run strictly in order on the calling goroutine, there
// is no retry, and a failed run must be re-invoked from the start.
func ProduceSbom(ctx context.Context, request *JobRequest, engine scanner.Engine, store artifact.Store) (*Result, error) {
	err := request.Validate()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	common.Log("Run %s: generating SBOM for %s@%s", runID, request.Repository(), request.Ref)
	record("validated", "run %s validated request for %s@%s", runID, request.Repository(), request.Ref)

	tarball := filepath.Join(pathlib.TempDir(), fmt.Sprintf("snapshot-%s.tar.gz", runID))
	defer os.Remove(tarball)

	source, err := github.DefaultOrigin().Snapshot(ctx, request.Owner, request.Name, request.Ref, tarball)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	record("fetched", "run %s fetched snapshot using %s", runID, source)

	site, err := workspace.New(request.Owner, request.Name, request.Ref, runID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer site.Close()

	err = site.Extract(tarball)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	common.Debug("Workspace listing: %s", strings.Join(site.Listing(), " "))
	record("extracted", "run %s extracted snapshot into workspace %s", runID, site.Identity)

	document := filepath.Join(pathlib.TempDir(), fmt.Sprintf("sbom-%s.json", runID))
	defer os.Remove(document)

	err = engine.Produce(ctx, site.Root, document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScan, err)
	}
	record("scanned", "run %s scanned workspace %s", runID, site.Identity)

	survey, err := sbom.Validate(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	record("surveyed", "run %s found %d components", runID, survey.ComponentCount)

	err = sbom.Enrich(document, sbom.Provenance{
		Repository: request.Repository(),
		Reference:  request.Ref,
		SbomID:     request.SbomID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnrichment, err)
	}
	record("enriched", "run %s enriched document", runID)

	report := &CompletionReport{
		SbomID:         request.SbomID,
		Status:         StatusFailed,
		RunID:          runID,
		ComponentCount: survey.ComponentCount,
		Repository:     request.Repository(),
		Reference:      request.Ref,
	}
	result := &Result{
		Report: report,
		Survey: survey,
	}

	payload, err := os.ReadFile(document)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrPublish, err)
	}
	result.Size = int64(len(payload))

	identity := request.SbomID
	if len(identity) == 0 {
		identity = runID
	}
	receipt, err := store.Publish(ctx, artifact.ObjectName(identity), payload, sbom.MediaType)
	if err != nil {
		// The in-memory report survives a publish failure, so the
		// caller still gets told, just not told "success".
		record("published", "run %s failed to publish artifact: %v", runID, err)
		report.Notify(ctx, request.CallbackURL)
		return result, fmt.Errorf("%w: %v", ErrPublish, err)
	}
	result.Receipt = receipt
	record("published", "run %s published %s (expires %s)", runID, receipt.Key, receipt.Expires.Format("2006-01-02"))

	location, err := store.Link(ctx, receipt.Key)
	if err != nil {
		common.Uncritical("artifact link", err)
	}
	result.Location = location

	report.Status = StatusSuccess
	report.Notify(ctx, request.CallbackURL)
	record("notified", "run %s completed with status %s", runID, report.Status)

	return result, nil
}
