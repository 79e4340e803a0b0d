//go:build windows

package pretty

import (
	"os"

	"golang.org/x/sys/windows"

	"github.com/torqsecure/sbomgen/common"
)

func localSetup(interactive bool) {
	if !interactive {
		return
	}
	handle := windows.Handle(os.Stdout.Fd())
	var mode uint32
	err := windows.GetConsoleMode(handle, &mode)
	if err != nil {
		common.Trace("Cannot query console mode: %v", err)
		Disabled = true
		return
	}
	mode |= windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING
	err = windows.SetConsoleMode(handle, mode)
	if err != nil {
		common.Trace("Cannot enable virtual terminal processing: %v", err)
		Disabled = true
		return
	}
	Iconic = true
}
