// Package diag reports spec.md S7's InternalConsistencyError conditions:
// logged to stderr, never surfaced through the public API, execution
// continues with a best-effort result regardless. Grounded in the
// teacher's own "notify once" debug guards rather than a structured
// logging library — none of the retrieval pack's CPU/sound-chip cores
// pull in zerolog/zap/logrus for this kind of diagnostic.
package diag

import (
	"log"
	"sync"
)

// maxReports caps how many distinct InternalConsistencyError conditions a
// single process will ever print. package cpu already dedupes by program
// counter, but a corrupted or adversarial snapshot can still manufacture
// an unbounded number of distinct undefined-opcode sites; this is the
// second line of defense against a runaway loop flooding stderr.
const maxReports = 64

var (
	mu      sync.Mutex
	emitted int
)

// ReportOnce logs one InternalConsistencyError. Safe to pass directly as a
// cpu.UndefinedHandler or an equivalent dsp-side hook.
func ReportOnce(pc uint16, detail string) {
	mu.Lock()
	defer mu.Unlock()
	if emitted >= maxReports {
		return
	}
	emitted++
	log.Printf("spc700: internal consistency error at pc=%#04x: %s", pc, detail)
	if emitted == maxReports {
		log.Printf("spc700: suppressing further internal consistency reports (limit %d reached)", maxReports)
	}
}
