package sbom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/fail"
)

const (
	sourceRepoProperty  = `github:source_repo`
	sourceRefProperty   = `github:source_ref`
	generatedByProperty = `torqsecure:generated_by`
	generatedAtProperty = `torqsecure:generated_at`
	sbomIdProperty      = `torqsecure:sbom_id`

	timestampLayout = `2006-01-02T15:04:05Z`
)

// Provenance is what gets stamped into the document about where the
// SBOM came from.
type Provenance struct {
	Repository string
	Reference  string
	SbomID     string
}

func (it Provenance) properties() []Property {
	return []Property{
		{sourceRepoProperty, it.Repository},
		{sourceRefProperty, it.Reference},
		{generatedByProperty, fmt.Sprintf("sbomgen %s", common.Version)},
		{generatedAtProperty, time.Now().UTC().Format(timestampLayout)},
		{sbomIdProperty, it.SbomID},
	}
}

// Enrich appends the five provenance properties to the document's
// metadata.properties, creating the array when absent. The document is
// otherwise untouched; notably no component entry is added, removed or
// mutated. The enriched file replaces the original atomically, so a
// partially written document is never visible at the target path.
//
// Enrichment always appends. Running it twice leaves ten properties
// with duplicated names in the document.
func Enrich(filename string, provenance Provenance) (err error) {
	defer fail.Around(&err)

	blob, err := os.ReadFile(filename)
	fail.On(err != nil, "Cannot read document %q -> %v", filename, err)

	decoder := json.NewDecoder(bytes.NewReader(blob))
	decoder.UseNumber()
	document := make(map[string]interface{})
	err = decoder.Decode(&document)
	fail.On(err != nil, "Document %q is not parseable -> %v", filename, err)

	metadata, ok := document["metadata"].(map[string]interface{})
	if !ok {
		metadata = make(map[string]interface{})
		document["metadata"] = metadata
	}
	properties, ok := metadata["properties"].([]interface{})
	if !ok {
		properties = make([]interface{}, 0, 5)
	}
	for _, property := range provenance.properties() {
		properties = append(properties, map[string]interface{}{
			"name":  property.Name,
			"value": property.Value,
		})
	}
	metadata["properties"] = properties

	enriched, err := json.MarshalIndent(document, "", "  ")
	fail.On(err != nil, "Cannot serialize enriched document -> %v", err)

	// Atomic replace: temp file next to the target, then rename.
	temporary := filename + ".part"
	err = os.WriteFile(temporary, enriched, 0o644)
	fail.On(err != nil, "Cannot write %q -> %v", temporary, err)

	err = os.Rename(temporary, filename)
	if err != nil {
		os.Remove(temporary)
		fail.On(true, "Cannot replace %q with enriched document -> %v", filename, err)
	}

	common.Timeline("document %s enriched", filename)
	return nil
}
