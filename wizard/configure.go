package wizard

import (
	"fmt"
	"strconv"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/fail"
	"github.com/torqsecure/sbomgen/pathlib"
	"github.com/torqsecure/sbomgen/pretty"
	"github.com/torqsecure/sbomgen/settings"
	"github.com/torqsecure/sbomgen/xviper"
)

// Configure interviews the operator and writes the settings file under
// the product home. Pressing enter everywhere keeps the defaults, so
// the flow doubles as a way to inspect what is currently in effect.
func Configure(force bool) (err error) {
	defer fail.Around(&err)

	fail.On(!pretty.Interactive && !force, "Configuration wizard needs a terminal, or --yes to accept defaults.")

	current, err := settings.SummonSettings()
	fail.Fast(err)

	filename := common.SettingsFile()
	if pathlib.IsFile(filename) {
		note("Settings file %q already exists.", filename)
		ok, err := Confirm("Overwrite it?", force)
		fail.Fast(err)
		if !ok {
			return nil
		}
	}

	if pretty.Interactive {
		endpoint, err := ask("GitHub API endpoint", current.Github.ApiEndpoint,
			endpointValidation("Give a full URL, like https://api.github.com"))
		fail.Fast(err)
		current.Github.ApiEndpoint = endpoint

		codeload, err := ask("GitHub codeload endpoint", current.Github.CodeloadEndpoint,
			endpointValidation("Give a full URL, like https://codeload.github.com"))
		fail.Fast(err)
		current.Github.CodeloadEndpoint = codeload

		store, err := ask("Artifact store endpoint (host:port)", current.Artifacts.Endpoint,
			func(string) bool { return true })
		fail.Fast(err)
		current.Artifacts.Endpoint = store

		bucket, err := ask("Artifact bucket", current.Artifacts.Bucket, ValidateBucketName())
		fail.Fast(err)
		current.Artifacts.Bucket = bucket

		retention, err := ask("Artifact retention in days", fmt.Sprintf("%d", current.Artifacts.RetentionDays),
			numberValidation(1, 365, "Give a number of days between 1 and 365."))
		fail.Fast(err)
		current.Artifacts.RetentionDays, _ = strconv.Atoi(retention)
	}

	blob, err := current.AsYaml()
	fail.Fast(err)
	fail.Fast(pathlib.WriteFile(filename, blob, 0o644))

	if pretty.Interactive {
		consent, err := Confirm("Send an anonymous installation id with fetch requests?", false)
		fail.Fast(err)
		xviper.ConsentTracking(consent)
	}

	pretty.Highlight("Settings written to %q.", filename)
	return nil
}
