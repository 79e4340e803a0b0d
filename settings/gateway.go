package settings

import (
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/torqsecure/sbomgen/common"
)

type gateway bool

// Global is the lazy access point to current settings. A load failure
// here is logged and answered with defaults so reads stay total; the
// hard gate against a broken settings file is the startup check in
// CriticalEnvironmentSettingsCheck.
var Global gateway = true

func (it gateway) settings() *Settings {
	settings, err := SummonSettings()
	if err != nil {
		common.Fatal("settings", err)
		return Defaults()
	}
	return settings
}

func (it gateway) Name() string {
	return it.settings().Meta.Name
}

func (it gateway) GithubApiEndpoint() string {
	return it.settings().Github.ApiEndpoint
}

func (it gateway) CodeloadEndpoint() string {
	return it.settings().Github.CodeloadEndpoint
}

func (it gateway) Token() string {
	variable := it.settings().Github.TokenVariable
	if len(variable) == 0 {
		variable = common.TokenVariable
	}
	return os.Getenv(variable)
}

func (it gateway) ScannerCommand() string {
	return it.settings().Scanner.Command
}

func (it gateway) ScannerVersion() string {
	return it.settings().Scanner.Version
}

func (it gateway) ScannerReleasesEndpoint() string {
	return it.settings().Scanner.ReleasesEndpoint
}

func (it gateway) ScannerTimeout() time.Duration {
	minutes := it.settings().Scanner.TimeoutMinutes
	if minutes < 1 {
		minutes = 20
	}
	return time.Duration(minutes) * time.Minute
}

func (it gateway) ArtifactEndpoint() string {
	return it.settings().Artifacts.Endpoint
}

func (it gateway) ArtifactRegion() string {
	return it.settings().Artifacts.Region
}

func (it gateway) ArtifactBucket() string {
	return it.settings().Artifacts.Bucket
}

func (it gateway) ArtifactUseSSL() bool {
	return it.settings().Artifacts.UseSSL
}

func (it gateway) ArtifactAccessKey() string {
	return os.Getenv(accessKeyEnvironment)
}

func (it gateway) ArtifactSecretKey() string {
	return os.Getenv(secretKeyEnvironment)
}

func (it gateway) RetentionDays() int {
	days := it.settings().Artifacts.RetentionDays
	if days < 1 {
		days = 7
	}
	return days
}

func (it gateway) CompressionLevel() int {
	level := it.settings().Artifacts.CompressionLevel
	if level < 1 || level > 9 {
		level = 6
	}
	return level
}

func (it gateway) RunTimeout() time.Duration {
	minutes := it.settings().Network.TimeoutMinutes
	if minutes < 1 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

func (it gateway) HttpsProxy() string {
	value := it.settings().Network.HttpsProxy
	if len(value) > 0 {
		return value
	}
	return os.Getenv(httpsProxyEnvironment)
}

func (it gateway) HttpProxy() string {
	value := it.settings().Network.HttpProxy
	if len(value) > 0 {
		return value
	}
	return os.Getenv(httpProxyEnvironment)
}

func (it gateway) Hostnames() []string {
	return it.settings().Hostnames()
}

func (it gateway) ConfiguredHttpTransport() *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	proxy := it.HttpsProxy()
	if len(proxy) == 0 {
		proxy = it.HttpProxy()
	}
	if len(proxy) > 0 {
		link, err := url.Parse(proxy)
		if err != nil {
			common.Error("proxy URL", err)
		} else {
			transport.Proxy = http.ProxyURL(link)
		}
	}
	return transport
}
