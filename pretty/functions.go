package pretty

import (
	"fmt"
	"os"

	"github.com/torqsecure/sbomgen/common"
)

func Ok() error {
	common.Log("%sOK.%s", Green, Reset)
	return nil
}

func Highlight(form string, details ...interface{}) {
	message := fmt.Sprintf(form, details...)
	common.Log("%s%s%s", Sparkles+Cyan, message, Reset)
}

func Note(form string, details ...interface{}) {
	message := fmt.Sprintf(form, details...)
	common.Log("%sNote: %s%s", Yellow, message, Reset)
}

func Warning(form string, details ...interface{}) {
	message := fmt.Sprintf(form, details...)
	common.Log("%sWarning: %s%s", Yellow, message, Reset)
}

// Exit flushes pending log output and terminates the process with
// given exit code. Code zero renders green, everything else red.
func Exit(code int, form string, details ...interface{}) {
	message := fmt.Sprintf(form, details...)
	if code == 0 {
		common.Log("%s%s%s", Green, message, Reset)
	} else {
		common.Log("%s%s%s", Red, message, Reset)
	}
	common.DisplayTimeline()
	common.WaitLogs()
	os.Exit(code)
}

// Guard works as a lazy exit: when condition does not hold, process
// exits with given code and message.
func Guard(condition bool, code int, form string, details ...interface{}) {
	if !condition {
		Exit(code, form, details...)
	}
}
