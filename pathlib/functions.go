package pathlib

import (
	"os"
	"path/filepath"

	"github.com/torqsecure/sbomgen/common"
)

func Exists(pathname string) bool {
	_, err := os.Stat(pathname)
	return !os.IsNotExist(err)
}

func IsFile(pathname string) bool {
	stat, err := os.Stat(pathname)
	return err == nil && stat.Mode().IsRegular()
}

func IsDir(pathname string) bool {
	stat, err := os.Stat(pathname)
	return err == nil && stat.IsDir()
}

func Size(pathname string) (int64, bool) {
	stat, err := os.Stat(pathname)
	if err != nil {
		return 0, false
	}
	return stat.Size(), true
}

func EnsureDirectoryExists(directory string) error {
	if IsDir(directory) {
		return nil
	}
	return os.MkdirAll(directory, 0o750)
}

func EnsureParentDirectory(resource string) error {
	return EnsureDirectoryExists(filepath.Dir(resource))
}

// Create makes the parent directory chain before creating the file.
func Create(filename string) (*os.File, error) {
	err := EnsureParentDirectory(filename)
	if err != nil {
		return nil, err
	}
	return os.Create(filename)
}

func TempDir() string {
	location := common.TempLocation()
	err := EnsureDirectoryExists(location)
	if err != nil {
		return os.TempDir()
	}
	return location
}

func WriteFile(filename string, blob []byte, mode os.FileMode) error {
	err := EnsureParentDirectory(filename)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, blob, mode)
}
