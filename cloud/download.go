package cloud

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/pathlib"
	"github.com/torqsecure/sbomgen/settings"
)

// Download streams given URL into a local file. Any non-2xx status is
// a failure, and a previous file at the target location is removed
// before the transfer starts.
func Download(ctx context.Context, url string, headers map[string]string, filename string) error {
	common.Timeline("start %s download", filename)
	defer common.Timeline("done %s download", filename)

	if pathlib.Exists(filename) {
		err := os.Remove(filename)
		if err != nil {
			return err
		}
	}

	client := &http.Client{Transport: settings.Global.ConfiguredHttpTransport()}
	request, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	request.Header.Add("Accept", "application/octet-stream")
	request.Header.Add("User-Agent", common.UserAgent())
	for name, value := range headers {
		request.Header.Add(name, value)
	}
	response, err := client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("Downloading %q failed, reason: %q!", url, response.Status)
	}

	out, err := pathlib.Create(filename)
	if err != nil {
		return err
	}
	defer out.Close()

	digest := sha256.New()

	common.Debug("Downloading %s <%s> -> %s", url, response.Status, filename)

	bytecount, err := io.Copy(io.MultiWriter(out, digest), response.Body)
	if err != nil {
		return err
	}

	common.Timeline("downloaded %d bytes to %s", bytecount, filename)

	err = out.Sync()
	if err != nil {
		return err
	}

	return common.Debug("%q SHA256 sum: %02x", filename, digest.Sum(nil))
}
