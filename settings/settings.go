package settings

import (
	"net/url"
	"os"
	"sync"

	"gopkg.in/yaml.v2"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/pathlib"
	"github.com/torqsecure/sbomgen/pretty"
)

const (
	httpsProxyEnvironment = `HTTPS_PROXY`
	httpProxyEnvironment  = `HTTP_PROXY`
	accessKeyEnvironment  = `SBOMGEN_ARTIFACTS_ACCESS_KEY`
	secretKeyEnvironment  = `SBOMGEN_ARTIFACTS_SECRET_KEY`
)

type Github struct {
	ApiEndpoint      string `yaml:"api-endpoint"`
	CodeloadEndpoint string `yaml:"codeload-endpoint"`
	TokenVariable    string `yaml:"token-variable"`
}

type Scanner struct {
	Command          string `yaml:"command"`
	Version          string `yaml:"version"`
	ReleasesEndpoint string `yaml:"releases-endpoint"`
	TimeoutMinutes   int    `yaml:"timeout-minutes"`
}

type Artifacts struct {
	Endpoint         string `yaml:"endpoint"`
	Region           string `yaml:"region"`
	Bucket           string `yaml:"bucket"`
	UseSSL           bool   `yaml:"use-ssl"`
	RetentionDays    int    `yaml:"retention-days"`
	CompressionLevel int    `yaml:"compression-level"`
}

type Network struct {
	HttpsProxy     string `yaml:"https-proxy"`
	HttpProxy      string `yaml:"http-proxy"`
	TimeoutMinutes int    `yaml:"timeout-minutes"`
}

type Meta struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type Settings struct {
	Github    *Github    `yaml:"github"`
	Scanner   *Scanner   `yaml:"scanner"`
	Artifacts *Artifacts `yaml:"artifacts"`
	Network   *Network   `yaml:"network"`
	Meta      *Meta      `yaml:"meta"`
}

func Defaults() *Settings {
	return &Settings{
		Github: &Github{
			ApiEndpoint:      "https://api.github.com",
			CodeloadEndpoint: "https://codeload.github.com",
			TokenVariable:    common.TokenVariable,
		},
		Scanner: &Scanner{
			Command:          "",
			Version:          "1.18.1",
			ReleasesEndpoint: "https://github.com/anchore/syft/releases/download",
			TimeoutMinutes:   20,
		},
		Artifacts: &Artifacts{
			Endpoint:         "localhost:9000",
			Region:           "us-east-1",
			Bucket:           "sboms",
			UseSSL:           false,
			RetentionDays:    7,
			CompressionLevel: 6,
		},
		Network: &Network{
			TimeoutMinutes: 30,
		},
		Meta: &Meta{
			Name:    "sbomgen",
			Version: common.Version,
		},
	}
}

func FromBytes(blob []byte) (*Settings, error) {
	settings := Defaults()
	err := yaml.Unmarshal(blob, settings)
	if err != nil {
		return nil, err
	}
	return settings.fillMissing(), nil
}

func (it *Settings) fillMissing() *Settings {
	reference := Defaults()
	if it.Github == nil {
		it.Github = reference.Github
	}
	if it.Scanner == nil {
		it.Scanner = reference.Scanner
	}
	if it.Artifacts == nil {
		it.Artifacts = reference.Artifacts
	}
	if it.Network == nil {
		it.Network = reference.Network
	}
	if it.Meta == nil {
		it.Meta = reference.Meta
	}
	return it
}

func (it *Settings) AsYaml() ([]byte, error) {
	return yaml.Marshal(it)
}

func (it *Settings) Hostnames() []string {
	result := make([]string, 0, 3)
	for _, endpoint := range []string{it.Github.ApiEndpoint, it.Github.CodeloadEndpoint, it.Scanner.ReleasesEndpoint} {
		parsed, err := url.Parse(endpoint)
		if err == nil && len(parsed.Hostname()) > 0 {
			result = append(result, parsed.Hostname())
		}
	}
	result = append(result, it.Artifacts.Endpoint)
	return result
}

var (
	summoned    *Settings
	summonMutex sync.Mutex
)

// SummonSettings loads the settings file under the product home, or
// falls back to built-in defaults when the file does not exist.
func SummonSettings() (*Settings, error) {
	summonMutex.Lock()
	defer summonMutex.Unlock()
	if summoned != nil {
		return summoned, nil
	}
	filename := common.SettingsFile()
	if !pathlib.IsFile(filename) {
		summoned = Defaults()
		return summoned, nil
	}
	blob, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	settings, err := FromBytes(blob)
	if err != nil {
		return nil, err
	}
	summoned = settings
	return summoned, nil
}

func CriticalEnvironmentSettingsCheck() {
	_, err := SummonSettings()
	pretty.Guard(err == nil, 111, "Cannot load settings, reason: %v", err)
}
