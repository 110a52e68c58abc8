package scrollbind

import (
	"fmt"
	"os"
	"time"
)

// applyStats holds the metrics of one apply. Only populated when
// Options.Debug is true.
type applyStats struct {
	offset   float64
	settled  bool
	writes   int
	records  int
	duration time.Duration
}

func debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[scrollbind] "+format+"\n", args...)
}

// debugCompile prints the shape of a freshly compiled set.
func debugCompile(set *AnimationSet, took time.Duration) {
	debugf("compiled %d selectors, %d records in %v", set.Len(), set.NumRecords(), took)
	for _, sel := range set.Dropped() {
		debugf("selector %q matched no element", sel)
	}
}

// debugApply prints timing and write counts of one apply.
func debugApply(stats applyStats) {
	kind := "apply"
	if stats.settled {
		kind = "settle"
	}
	debugf("%s offset: %s | records: %d | writes: %d | took: %v",
		kind, formatNumber(stats.offset), stats.records, stats.writes, stats.duration)
}
