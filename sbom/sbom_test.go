package sbom_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/torqsecure/sbomgen/hamlet"
	"github.com/torqsecure/sbomgen/sbom"
)

func documentFile(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "document.json")
	err := os.WriteFile(filename, []byte(content), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return filename
}

type enriched struct {
	BomFormat string `json:"bomFormat"`
	Serial    string `json:"serialNumber"`
	Metadata  struct {
		Properties []sbom.Property `json:"properties"`
	} `json:"metadata"`
	Components []struct {
		Name string `json:"name"`
	} `json:"components"`
}

func reload(t *testing.T, filename string) *enriched {
	t.Helper()
	blob, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	holder := new(enriched)
	err = json.Unmarshal(blob, holder)
	if err != nil {
		t.Fatal(err)
	}
	return holder
}

func TestValidateSurveysConformingDocument(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	filename := documentFile(t, `{
		"bomFormat": "CycloneDX",
		"specVersion": "1.5",
		"components": [{"name": "left-pad"}, {"name": "is-odd"}, {"name": "is-even"}]
	}`)
	survey, err := sbom.Validate(filename)
	must_be.Nil(err)
	wont_be.Nil(survey)
	must_be.True(survey.Conforming)
	must_be.Equal("CycloneDX", survey.BomFormat)
	must_be.Equal("1.5", survey.SpecVersion)
	must_be.Equal(3, survey.ComponentCount)
}

func TestWrongDialectTagIsAdvisoryOnly(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	filename := documentFile(t, `{"bomFormat": "SPDX", "specVersion": "2.3"}`)
	survey, err := sbom.Validate(filename)
	must_be.Nil(err)
	wont_be.Nil(survey)
	wont_be.True(survey.Conforming)
	must_be.Equal(0, survey.ComponentCount)
}

func TestOddlyShapedComponentsCountAsZero(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	shapes := []string{
		`{"bomFormat": "CycloneDX", "components": "oops"}`,
		`{"bomFormat": "CycloneDX", "components": {"name": "left-pad"}}`,
		`{"bomFormat": "CycloneDX", "components": 42}`,
		`{"bomFormat": "CycloneDX", "components": null}`,
		`{"bomFormat": "CycloneDX"}`,
	}
	for _, shape := range shapes {
		survey, err := sbom.Validate(documentFile(t, shape))
		must_be.Nil(err)
		wont_be.Nil(survey)
		must_be.True(survey.Conforming)
		must_be.Equal(0, survey.ComponentCount)
	}
}

func TestUnparsableDocumentIsFatal(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	filename := documentFile(t, `this is not json at all`)
	survey, err := sbom.Validate(filename)
	must_be.Nil(survey)
	wont_be.Nil(err)
}

func TestEnrichAppendsFiveProperties(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	filename := documentFile(t, `{"bomFormat": "CycloneDX", "specVersion": "1.5"}`)
	err := sbom.Enrich(filename, sbom.Provenance{
		Repository: "torqsecure/widget",
		Reference:  "v1.2.3",
		SbomID:     "abc123",
	})
	must_be.Nil(err)

	holder := reload(t, filename)
	properties := holder.Metadata.Properties
	must_be.Equal(5, len(properties))
	must_be.Equal("github:source_repo", properties[0].Name)
	must_be.Equal("torqsecure/widget", properties[0].Value)
	must_be.Equal("github:source_ref", properties[1].Name)
	must_be.Equal("v1.2.3", properties[1].Value)
	must_be.Equal("torqsecure:generated_by", properties[2].Name)
	must_be.True(len(properties[2].Value) > len("sbomgen "))
	must_be.Equal("torqsecure:generated_at", properties[3].Name)
	must_be.Equal(len("2006-01-02T15:04:05Z"), len(properties[3].Value))
	must_be.Equal("torqsecure:sbom_id", properties[4].Name)
	must_be.Equal("abc123", properties[4].Value)
}

func TestEnrichLeavesRestOfDocumentUntouched(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	filename := documentFile(t, `{
		"bomFormat": "CycloneDX",
		"serialNumber": "urn:uuid:dead-beef",
		"metadata": {"properties": [{"name": "existing", "value": "kept"}]},
		"components": [{"name": "left-pad"}]
	}`)
	err := sbom.Enrich(filename, sbom.Provenance{Repository: "a/b", Reference: "main"})
	must_be.Nil(err)

	holder := reload(t, filename)
	must_be.Equal("CycloneDX", holder.BomFormat)
	must_be.Equal("urn:uuid:dead-beef", holder.Serial)
	must_be.Equal(1, len(holder.Components))
	must_be.Equal("left-pad", holder.Components[0].Name)
	must_be.Equal(6, len(holder.Metadata.Properties))
	must_be.Equal("existing", holder.Metadata.Properties[0].Name)
	must_be.Equal("kept", holder.Metadata.Properties[0].Value)
}

func TestEnrichTwiceLeavesTenProperties(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	filename := documentFile(t, `{"bomFormat": "CycloneDX"}`)
	provenance := sbom.Provenance{Repository: "a/b", Reference: "main", SbomID: "twice"}
	must_be.Nil(sbom.Enrich(filename, provenance))
	must_be.Nil(sbom.Enrich(filename, provenance))

	holder := reload(t, filename)
	must_be.Equal(10, len(holder.Metadata.Properties))
	must_be.Equal(holder.Metadata.Properties[0].Name, holder.Metadata.Properties[5].Name)
}

func TestEnrichRejectsUnparsableDocument(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	filename := documentFile(t, `[1, 2, 3`)
	err := sbom.Enrich(filename, sbom.Provenance{Repository: "a/b"})
	must_be.True(err != nil)
}
