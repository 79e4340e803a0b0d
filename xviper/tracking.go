package xviper

import (
	"crypto/sha256"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	trackingIdentityKey = `tracking.identity`
	trackingConsentKey  = `tracking.consent`
)

var (
	guidSteps = []int{4, 2, 2, 2, 6}
)

func AsGuid(content []byte) string {
	result := make([]string, 0, len(guidSteps))
	for _, step := range guidSteps {
		result = append(result, fmt.Sprintf("%02x", content[:step]))
		content = content[step:]
	}
	return strings.Join(result, "-")
}

func generateRandomIdentity() string {
	now := time.Now()
	digester := sha256.New()
	content := fmt.Sprintf("ID: %v/%v/%v", now.Format(time.RFC3339Nano), rand.Uint64(), rand.Uint64())
	digester.Write([]byte(content))
	return AsGuid(digester.Sum(nil))
}

// InstallationIdentity is a random stable identifier for this install,
// sent to the fetch endpoints only when consent is given.
func InstallationIdentity() string {
	identity := GetString(trackingIdentityKey)
	if len(identity) == 0 {
		identity = generateRandomIdentity()
		Set(trackingIdentityKey, identity)
	}
	return identity
}

func ConsentTracking(state bool) {
	Set(trackingConsentKey, state)
}

func CanTrack() bool {
	return GetBool(trackingConsentKey)
}
