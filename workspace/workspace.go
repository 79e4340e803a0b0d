// Package workspace owns the per-run working directory where the
// repository snapshot is unpacked for scanning. Every pipeline run
// gets a fresh directory and removes it at the end; nothing is shared
// or reused between runs.
package workspace

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/fail"
	"github.com/torqsecure/sbomgen/pathlib"
)

type Workspace struct {
	Identity string
	Root     string
}

// New creates a fresh, empty workspace for one pipeline run. Identity
// mixes the repository coordinates with the run nonce so concurrent
// runs against the same repository never collide.
func New(owner, name, ref, nonce string) (*Workspace, error) {
	seed := fmt.Sprintf("%s/%s@%s#%s", owner, name, ref, nonce)
	identity := common.IdentityHash([]byte(seed))
	root := filepath.Join(common.WorkspaceLocation(), identity)
	if pathlib.Exists(root) {
		err := os.RemoveAll(root)
		if err != nil {
			return nil, err
		}
	}
	err := pathlib.EnsureDirectoryExists(root)
	if err != nil {
		return nil, err
	}
	common.Timeline("workspace %s created", identity)
	return &Workspace{
		Identity: identity,
		Root:     root,
	}, nil
}

// Extract unpacks a repository tarball into the workspace, stripping
// the single wrapping directory that hosting archives put on top, so
// that the repository tree sits directly at the workspace root.
func (it *Workspace) Extract(archive string) (err error) {
	defer fail.Around(&err)

	source, err := os.Open(archive)
	fail.On(err != nil, "Failed to open archive %q -> %v", archive, err)
	defer source.Close()

	unzipped, err := gzip.NewReader(source)
	fail.On(err != nil, "Failed to read archive %q -> %v", archive, err)
	defer unzipped.Close()

	entries := 0
	reader := tar.NewReader(unzipped)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		fail.On(err != nil, "Failed to read archive %q -> %v", archive, err)

		flat := stripWrapper(header.Name)
		if len(flat) == 0 {
			continue
		}

		target := filepath.Join(it.Root, flat)
		cleaned := filepath.Clean(target)
		fail.On(!strings.HasPrefix(cleaned, filepath.Clean(it.Root)+string(os.PathSeparator)),
			"Archive entry %q escapes workspace!", header.Name)

		switch header.Typeflag {
		case tar.TypeDir:
			err = pathlib.EnsureDirectoryExists(target)
			fail.Fast(err)
		case tar.TypeReg:
			sink, err := pathlib.Create(target)
			fail.On(err != nil, "Failed to create %q -> %v", target, err)
			_, err = io.Copy(sink, reader)
			sink.Close()
			fail.On(err != nil, "Failed to write %q -> %v", target, err)
			err = os.Chmod(target, header.FileInfo().Mode().Perm())
			fail.Fast(err)
			entries += 1
		default:
			common.Trace("Ignoring archive entry %q of type %d.", header.Name, header.Typeflag)
		}
	}
	fail.On(entries == 0, "Archive %q contained no files!", archive)
	common.Timeline("workspace %s holds %d files", it.Identity, entries)
	return nil
}

// Listing names the entries at the workspace root, diagnostics only.
func (it *Workspace) Listing() []string {
	entries, err := os.ReadDir(it.Root)
	if err != nil {
		common.Error("workspace listing", err)
		return nil
	}
	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		result = append(result, name)
	}
	return result
}

func (it *Workspace) Close() error {
	common.Timeline("workspace %s removed", it.Identity)
	return os.RemoveAll(it.Root)
}

func stripWrapper(name string) string {
	flat := filepath.ToSlash(name)
	parts := strings.SplitN(flat, "/", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
