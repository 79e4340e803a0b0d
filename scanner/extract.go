package scanner

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/torqsecure/sbomgen/fail"
	"github.com/torqsecure/sbomgen/pathlib"
)

// extractEntry finds the named file inside a tar.gz and writes it to a
// temp location, returning the written path.
func extractEntry(tarGz, name string) (found string, err error) {
	defer fail.Around(&err)

	source, err := os.Open(tarGz)
	fail.Fast(err)
	defer source.Close()

	unzipped, err := gzip.NewReader(source)
	fail.Fast(err)
	defer unzipped.Close()

	reader := tar.NewReader(unzipped)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		fail.Fast(err)
		if header.Typeflag != tar.TypeReg || path.Base(filepath.ToSlash(header.Name)) != name {
			continue
		}
		target := filepath.Join(pathlib.TempDir(), name)
		sink, err := pathlib.Create(target)
		fail.Fast(err)
		_, err = io.Copy(sink, reader)
		sink.Close()
		fail.Fast(err)
		return target, nil
	}
	return "", fmt.Errorf("no %q inside %q", name, tarGz)
}
