package xviper_test

import (
	"testing"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/hamlet"
	"github.com/torqsecure/sbomgen/xviper"
)

func TestConsentTogglePersists(t *testing.T) {
	t.Setenv(common.HomeVariable, t.TempDir())
	xviper.Lockdown()
	defer xviper.Lockdown()
	must_be, wont_be := hamlet.Specifications(t)

	wont_be.True(xviper.CanTrack())
	xviper.ConsentTracking(true)
	must_be.True(xviper.CanTrack())

	// Survives a reload from disk.
	xviper.Lockdown()
	must_be.True(xviper.CanTrack())

	xviper.ConsentTracking(false)
	wont_be.True(xviper.CanTrack())
}

func TestGuidShapeIsStable(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	content := []byte{
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
		16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31,
	}
	must_be.Equal("00010203-0405-0607-0809-0a0b0c0d0e0f", xviper.AsGuid(content))
}
