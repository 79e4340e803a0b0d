package settings_test

import (
	"testing"
	"time"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/hamlet"
	"github.com/torqsecure/sbomgen/settings"
)

func TestThatSomeDefaultValuesAreVisible(t *testing.T) {
	t.Setenv(common.HomeVariable, t.TempDir())
	t.Setenv("HTTP_PROXY", "")
	t.Setenv("HTTPS_PROXY", "")
	must_be, wont_be := hamlet.Specifications(t)

	sut, err := settings.SummonSettings()
	must_be.Nil(err)
	wont_be.Nil(sut)

	must_be.Equal("https://api.github.com", settings.Global.GithubApiEndpoint())
	must_be.Equal("https://codeload.github.com", settings.Global.CodeloadEndpoint())
	must_be.Equal(7, settings.Global.RetentionDays())
	must_be.Equal(6, settings.Global.CompressionLevel())
	must_be.Equal(30*time.Minute, settings.Global.RunTimeout())
	must_be.Equal(20*time.Minute, settings.Global.ScannerTimeout())
	must_be.Equal("", settings.Global.HttpProxy())
	must_be.Equal("", settings.Global.HttpsProxy())
	must_be.True(len(settings.Global.Hostnames()) == 4)
}

func TestPartialSettingsFileKeepsOtherDefaults(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	sut, err := settings.FromBytes([]byte("github:\n  api-endpoint: https://github.example.com\n"))
	must_be.Nil(err)
	wont_be.Nil(sut)
	must_be.Equal("https://github.example.com", sut.Github.ApiEndpoint)
	must_be.Equal("https://codeload.github.com", sut.Github.CodeloadEndpoint)
	must_be.Equal(7, sut.Artifacts.RetentionDays)

	blob, err := sut.AsYaml()
	must_be.Nil(err)
	must_be.True(len(blob) > 100)
}

func TestBrokenSettingsFileIsAnError(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	sut, err := settings.FromBytes([]byte("\tgithub: [broken"))
	wont_be.Nil(err)
	must_be.Nil(sut)
}
