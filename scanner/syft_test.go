package scanner_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/hamlet"
	"github.com/torqsecure/sbomgen/pathlib"
	"github.com/torqsecure/sbomgen/scanner"
	"github.com/torqsecure/sbomgen/settings"
)

var releaseHits int

func releaseTarball() []byte {
	buffer := new(bytes.Buffer)
	zipper := gzip.NewWriter(buffer)
	writer := tar.NewWriter(zipper)
	for _, name := range []string{"syft", "syft.exe", "LICENSE"} {
		content := "#!/bin/sh\nexit 0\n"
		writer.WriteHeader(&tar.Header{
			Name: name,
			Mode: 0o755,
			Size: int64(len(content)),
		})
		writer.Write([]byte(content))
	}
	writer.Close()
	zipper.Close()
	return buffer.Bytes()
}

func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "sbomgen-scanner-")
	if err != nil {
		panic(err)
	}
	os.Setenv(common.HomeVariable, home)

	releases := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		releaseHits += 1
		w.Write(releaseTarball())
	}))

	blob := fmt.Sprintf("scanner:\n  releases-endpoint: %q\n", releases.URL)
	err = os.WriteFile(common.SettingsFile(), []byte(blob), 0o644)
	if err != nil {
		panic(err)
	}

	code := m.Run()
	releases.Close()
	os.RemoveAll(home)
	os.Exit(code)
}

func installedEngine() string {
	name := "syft"
	if runtime.GOOS == "windows" {
		name = "syft.exe"
	}
	return filepath.Join(common.BinLocation(), fmt.Sprintf("syft-%s", settings.Global.ScannerVersion()), name)
}

func TestEngineBootstrapInstallsUnderProductHome(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	target := installedEngine()
	os.Remove(target)
	must_be.True(!pathlib.IsFile(target))

	must_be.True(scanner.MustSyft(context.Background()))
	must_be.True(pathlib.IsFile(target))

	// Second call finds the cached binary without touching the network.
	landed := releaseHits
	must_be.True(scanner.MustSyft(context.Background()))
	must_be.Equal(landed, releaseHits)
}
