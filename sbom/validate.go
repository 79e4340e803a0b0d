package sbom

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/pretty"
)

type probe struct {
	BomFormat   string          `json:"bomFormat"`
	SpecVersion string          `json:"specVersion"`
	Components  json.RawMessage `json:"components"`
}

// componentCount stays advisory: absent, null or oddly shaped
// components yield zero instead of failing the run.
func componentCount(blob json.RawMessage) int {
	if len(blob) == 0 {
		return 0
	}
	entries := []json.RawMessage{}
	if json.Unmarshal(blob, &entries) != nil {
		return 0
	}
	return len(entries)
}

// Validate checks that the document at given path parses as JSON and
// surveys its dialect tag and component count. Unparsable content is
// an error; a wrong dialect tag is reported in the survey but left to
// the caller as a warning-only condition.
func Validate(filename string) (*Survey, error) {
	blob, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read document %q: %w", filename, err)
	}
	holder := probe{}
	err = json.Unmarshal(blob, &holder)
	if err != nil {
		return nil, fmt.Errorf("document %q is not parseable: %w", filename, err)
	}
	survey := &Survey{
		BomFormat:      holder.BomFormat,
		SpecVersion:    holder.SpecVersion,
		ComponentCount: componentCount(holder.Components),
		Conforming:     holder.BomFormat == BomFormat,
	}
	if !survey.Conforming {
		pretty.Warning("Document %q has dialect tag %q, expected %q.", filename, holder.BomFormat, BomFormat)
	}
	common.Debug("Document %q: dialect %q, spec version %q, %d components.", filename, holder.BomFormat, holder.SpecVersion, survey.ComponentCount)
	return survey, nil
}
