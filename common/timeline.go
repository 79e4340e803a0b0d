package common

import (
	"fmt"
	"sync"
	"time"
)

type timevent struct {
	when time.Duration
	what string
}

var (
	timeline     []*timevent
	timelineLock sync.Mutex
	birth        = time.Now()
)

// Timeline records a breadcrumb for the run timeline. Breadcrumbs are
// shown at process end when debug output is enabled.
func Timeline(form string, details ...interface{}) {
	timelineLock.Lock()
	defer timelineLock.Unlock()
	timeline = append(timeline, &timevent{time.Since(birth), fmt.Sprintf(form, details...)})
}

func DisplayTimeline() {
	if !DebugFlag() || len(timeline) == 0 {
		return
	}
	timelineLock.Lock()
	defer timelineLock.Unlock()
	total := float64(time.Since(birth).Milliseconds())
	if total < 1 {
		total = 1
	}
	Log("----  sbomgen timeline  ----")
	for _, event := range timeline {
		elapsed := float64(event.when.Milliseconds())
		Log("%6.3fs %5.1f%%  %s", event.when.Seconds(), 100.0*elapsed/total, event.what)
	}
	Log("----  sbomgen timeline  ----")
}
