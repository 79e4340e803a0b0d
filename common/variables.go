package common

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

const (
	HomeVariable  = `SBOMGEN_HOME`
	TokenVariable = `GITHUB_TOKEN`
)

var (
	LogLinenumbers bool
	LogHides       []string
	NoColors       bool
	ControllerType string

	When = time.Now().Unix()

	silentFlag bool
	debugFlag  bool
	traceFlag  bool
)

func init() {
	ControllerType = "user"
}

func DefineVerbosity(silent, debug, trace bool) {
	silentFlag = silent
	debugFlag = debug
	traceFlag = trace
}

func Silent() bool {
	return silentFlag
}

func DebugFlag() bool {
	return debugFlag || traceFlag
}

func TraceFlag() bool {
	return traceFlag
}

func ControllerIdentity() string {
	return fmt.Sprintf("sbomgen.%s", ControllerType)
}

func UserAgent() string {
	return fmt.Sprintf("sbomgen/%s (%s %s)", Version, runtime.GOOS, runtime.GOARCH)
}

// Home is the product home directory. All caches, settings, workspaces
// and the run journal live under it.
func Home() string {
	home := os.Getenv(HomeVariable)
	if len(home) > 0 {
		return ExpandPath(home)
	}
	return ExpandPath(defaultHomeLocation)
}

func BinLocation() string {
	return filepath.Join(Home(), "bin")
}

func WorkspaceLocation() string {
	return filepath.Join(Home(), "workspaces")
}

func TempLocation() string {
	return filepath.Join(Home(), "temp")
}

func SettingsFile() string {
	return filepath.Join(Home(), "settings.yaml")
}

func JournalFile() string {
	return filepath.Join(Home(), "runs.jsonl")
}

func ConfigFile() string {
	return filepath.Join(Home(), "sbomgen.yaml")
}

func Platform() string {
	return fmt.Sprintf("%s_%s", runtime.GOOS, runtime.GOARCH)
}
