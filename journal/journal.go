// Package journal keeps an append-only JSONL record of pipeline runs
// under the product home, for the `sbomgen journal` listing and for
// after-the-fact debugging of what a run did.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/fail"
	"github.com/torqsecure/sbomgen/pathlib"
)

var (
	spacePattern = regexp.MustCompile(`\s+`)
	journalMutex sync.Mutex
)

type Event struct {
	When       int64  `json:"when"`
	Controller string `json:"controller"`
	Event      string `json:"event"`
	Detail     string `json:"detail"`
	Comment    string `json:"comment,omitempty"`
}

// Unify collapses all whitespace runs in text into single spaces.
func Unify(value string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(value, " "))
}

// Post appends one event into the run journal. Journal failures are
// reported to the caller but they should stay non-fatal there.
func Post(event, detail, commentForm string, fields ...interface{}) (err error) {
	defer fail.Around(&err)

	journalMutex.Lock()
	defer journalMutex.Unlock()

	message := Event{
		When:       common.When,
		Controller: common.ControllerIdentity(),
		Event:      Unify(event),
		Detail:     Unify(detail),
		Comment:    Unify(fmt.Sprintf(commentForm, fields...)),
	}
	blob, err := json.Marshal(message)
	fail.On(err != nil, "Could not serialize event: %v -> %v", event, err)

	err = pathlib.EnsureParentDirectory(common.JournalFile())
	fail.On(err != nil, "Could not ensure journal location -> %v", err)

	handle, err := os.OpenFile(common.JournalFile(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	fail.On(err != nil, "Could not open journal %v -> %v", common.JournalFile(), err)
	defer handle.Close()

	_, err = handle.Write(append(blob, '\n'))
	fail.On(err != nil, "Could not write event %v -> %v", event, err)

	return handle.Sync()
}

// Events reads the full journal back, skipping unparsable lines.
func Events() (result []Event, err error) {
	defer fail.Around(&err)

	journalMutex.Lock()
	defer journalMutex.Unlock()

	if !pathlib.IsFile(common.JournalFile()) {
		return []Event{}, nil
	}
	handle, err := os.Open(common.JournalFile())
	fail.On(err != nil, "Could not open journal %v -> %v", common.JournalFile(), err)
	defer handle.Close()

	result = make([]Event, 0, 64)
	scanner := bufio.NewScanner(handle)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		event := Event{}
		if json.Unmarshal([]byte(line), &event) != nil {
			common.Trace("Skipping journal line %q.", line)
			continue
		}
		result = append(result, event)
	}
	return result, scanner.Err()
}
