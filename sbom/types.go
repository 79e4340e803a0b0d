package sbom

// BomFormat is the dialect tag every CycloneDX document carries.
const BomFormat = `CycloneDX`

// MediaType is the content type for CycloneDX JSON documents.
const MediaType = `application/vnd.cyclonedx+json`

// Property is one name/value pair under metadata.properties.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Survey is what format validation found out about a document. A
// non-conforming dialect tag is advisory only; the component count is
// observability data with a zero default.
type Survey struct {
	BomFormat      string
	SpecVersion    string
	ComponentCount int
	Conforming     bool
}
