// Package sbom validates and enriches CycloneDX documents produced by
// the scanning engine. Documents are treated as opaque JSON objects:
// validation reads a few known fields, and enrichment appends
// provenance properties without touching the component list or
// anything else in the document.
package sbom
