package common

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultHomeLocation = "$LOCALAPPDATA\\sbomgen"
)

func ExpandPath(entry string) string {
	intermediate := os.ExpandEnv(entry)
	intermediate = strings.ReplaceAll(intermediate, "/", string(filepath.Separator))
	result, err := filepath.Abs(intermediate)
	if err != nil {
		return intermediate
	}
	return result
}

func PlatformSyncDelay() {
	time.Sleep(300 * time.Millisecond)
}
