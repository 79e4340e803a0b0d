package main

import (
	"github.com/torqsecure/sbomgen/cmd"
	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/settings"
)

func main() {
	defer common.WaitLogs()
	settings.CriticalEnvironmentSettingsCheck()
	cmd.Execute()
}
