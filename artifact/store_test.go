package artifact_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/torqsecure/sbomgen/artifact"
	"github.com/torqsecure/sbomgen/hamlet"
)

func TestObjectNamingIsStable(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	must_be.Equal("sbom-abc123.json", artifact.ObjectName("abc123"))
	must_be.Equal("sbom-abc123.json", artifact.ObjectName("abc123"))
}

func TestCompressedPayloadRoundtrips(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	payload := bytes.Repeat([]byte(`{"name": "left-pad"},`), 500)
	squeezed, err := artifact.Compress(payload, 6)
	must_be.Nil(err)
	must_be.True(len(squeezed) < len(payload))

	reader, err := gzip.NewReader(bytes.NewReader(squeezed))
	must_be.Nil(err)
	restored, err := io.ReadAll(reader)
	must_be.Nil(err)
	must_be.True(bytes.Equal(payload, restored))
}

func TestInvalidCompressionLevelIsRejected(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	squeezed, err := artifact.Compress([]byte("hello"), 42)
	must_be.Nil(squeezed)
	wont_be.Nil(err)
}
