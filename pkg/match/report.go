package match

import (
	log "github.com/sirupsen/logrus"
)

// Counters summarizes a matcher run for reporting.
type Counters struct {
	Matched       int
	MatchedByHash int
	OneLeft       int
	Ambiguous     int
	SourceOrphans int
	DestOrphans   int
}

// Log writes a one-line summary of the run at info level.
func (c Counters) Log() {
	log.WithFields(log.Fields{
		"matched":     c.Matched,
		"byHash":      c.MatchedByHash,
		"oneLeft":     c.OneLeft,
		"ambiguous":   c.Ambiguous,
		"srcOrphans":  c.SourceOrphans,
		"destOrphans": c.DestOrphans,
	}).Info("Finished matching the source tree against the destination tree.")
}
