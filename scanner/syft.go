package scanner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/torqsecure/sbomgen/cloud"
	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/fail"
	"github.com/torqsecure/sbomgen/pathlib"
	"github.com/torqsecure/sbomgen/pretty"
	"github.com/torqsecure/sbomgen/settings"
	"github.com/torqsecure/sbomgen/shell"
)

type Syft struct{}

func NewSyft() *Syft {
	return &Syft{}
}

// Produce runs the syft engine against given directory. Success means
// exit code zero and an output file that actually exists.
func (it *Syft) Produce(ctx context.Context, directory, output string) error {
	command, err := resolveCommand(ctx)
	if err != nil {
		return err
	}
	bounded, cancel := context.WithTimeout(ctx, settings.Global.ScannerTimeout())
	defer cancel()

	if common.DebugFlag() {
		banner := append(append([]string{}, command...), "version")
		report, _, err := shell.New(os.Environ(), directory, banner...).WithContext(bounded).CaptureOutput()
		if err == nil {
			common.Debug("Scanning engine self-report: %s", strings.TrimSpace(report))
		}
	}

	task := append(append([]string{}, command...), "scan", fmt.Sprintf("dir:%s", directory), "-o", fmt.Sprintf("cyclonedx-json=%s", output), "-q")
	code, err := shell.New(os.Environ(), directory, task...).WithContext(bounded).Execute(false)
	if err != nil {
		return fmt.Errorf("scanning engine failed with exit code %d: %w", code, err)
	}
	if code != 0 {
		return fmt.Errorf("scanning engine failed with exit code %d", code)
	}
	if !pathlib.IsFile(output) {
		return fmt.Errorf("scanning engine exited cleanly but produced no %q", output)
	}
	return nil
}

// resolveCommand finds the engine invocation: a settings override
// first, then a syft binary on PATH, then a bootstrapped download
// under the product home.
func resolveCommand(ctx context.Context) ([]string, error) {
	override := settings.Global.ScannerCommand()
	if len(override) > 0 {
		command, err := shlex.Split(override)
		if err != nil {
			return nil, fmt.Errorf("broken scanner command override %q: %w", override, err)
		}
		if len(command) > 0 {
			common.Debug("Using scanner command override %q.", override)
			return command, nil
		}
	}
	found, err := exec.LookPath(binaryName())
	if err == nil {
		common.Debug("Using scanner from PATH at %q.", found)
		return []string{found}, nil
	}
	cached := cachedBinary()
	if pathlib.IsFile(cached) {
		return []string{cached}, nil
	}
	if !MustSyft(ctx) {
		return nil, fmt.Errorf("scanning engine is not available and could not be installed")
	}
	return []string{cached}, nil
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "syft.exe"
	}
	return "syft"
}

func cachedBinary() string {
	return filepath.Join(common.BinLocation(), fmt.Sprintf("syft-%s", settings.Global.ScannerVersion()), binaryName())
}

// MustSyft ensures the engine binary exists under the product home.
// The bootstrap download runs under the caller's deadline, so it
// cannot outlive the run that needs it.
func MustSyft(ctx context.Context) bool {
	return pathlib.IsFile(cachedBinary()) ||
		downloadSyft(ctx, 1*time.Millisecond) ||
		downloadSyft(ctx, 1*time.Second) ||
		downloadSyft(ctx, 3*time.Second)
}

func downloadSyft(ctx context.Context, delay time.Duration) bool {
	time.Sleep(delay)

	version := settings.Global.ScannerVersion()
	pretty.Highlight("Downloading scanning engine version %s...", version)

	url := fmt.Sprintf("%s/v%s/syft_%s_%s_%s.tar.gz",
		settings.Global.ScannerReleasesEndpoint(), version, version, runtime.GOOS, runtime.GOARCH)

	tempFile := filepath.Join(pathlib.TempDir(), fmt.Sprintf("syft-%s.tar.gz", version))
	defer os.Remove(tempFile)

	common.Debug("Downloading from: %s", url)
	err := cloud.Download(ctx, url, nil, tempFile)
	if err != nil {
		common.Log("Failed to download scanning engine: %v", err)
		return false
	}

	target := cachedBinary()
	err = installBinary(tempFile, binaryName(), target)
	if err != nil {
		common.Log("Failed to install scanning engine: %v", err)
		os.Remove(target)
		return false
	}

	common.PlatformSyncDelay()
	return true
}

// installBinary pulls one named file out of a release tarball and
// places it, executable, at the target path.
func installBinary(tarGz, name, target string) (err error) {
	defer fail.Around(&err)

	extracted, err := extractEntry(tarGz, name)
	fail.On(err != nil, "Failed to extract %q from %q -> %v", name, tarGz, err)

	err = pathlib.EnsureParentDirectory(target)
	fail.Fast(err)

	err = os.Rename(extracted, target)
	if err != nil {
		err = copyFile(extracted, target)
		fail.On(err != nil, "Failed to place binary at %q -> %v", target, err)
	}

	return os.Chmod(target, 0o755)
}

func copyFile(source, target string) error {
	blob, err := os.ReadFile(source)
	if err != nil {
		return err
	}
	return pathlib.WriteFile(target, blob, 0o755)
}
