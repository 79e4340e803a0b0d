package pretty

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/torqsecure/sbomgen/common"
)

var (
	Colorless   bool
	Iconic      bool
	Disabled    bool
	Interactive bool
	White       string
	Grey        string
	Red         string
	Green       string
	Blue        string
	Yellow      string
	Cyan        string
	Magenta     string
	Reset       string
	Bold        string
	Faint       string
	Sparkles    string
)

func Setup() {
	stdin := isatty.IsTerminal(os.Stdin.Fd())
	stdout := isatty.IsTerminal(os.Stdout.Fd())
	stderr := isatty.IsTerminal(os.Stderr.Fd())

	if os.Getenv("NO_COLOR") != "" {
		Colorless = true
	}
	if os.Getenv("TERM") == "" {
		Colorless = true
	}

	Interactive = stdin && stdout && stderr

	localSetup(Interactive)

	common.Trace("Interactive mode enabled: %v; colors enabled: %v; icons enabled: %v", Interactive, !Disabled, Iconic)

	if !Disabled && !Colorless && common.NoColors {
		common.Trace("Colors disabled by command line request.")
		Disabled = true
	}

	if !Disabled && !Colorless {
		White = csi("97m")
		Grey = csi("90m")
		Red = csi("91m")
		Green = csi("92m")
		Blue = csi("94m")
		Yellow = csi("93m")
		Cyan = csi("96m")
		Magenta = csi("95m")
		Reset = csi("0m")
		Bold = csi("1m")
		Faint = csi("2m")
	}
	if Iconic {
		Sparkles = "✨ "
	}
}

func csi(suffix string) string {
	return "\033[" + suffix
}
