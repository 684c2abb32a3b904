// Package aggregator implements the read-only domain summarizers the
// report assembler fans out over. Every aggregator exposes a single
// Summarize call that returns either a well-formed summary or an error;
// ErrUnavailable marks the explicit "no data to summarize" signal.
// Aggregators are side-effect-free and safe to call concurrently.
package aggregator

import (
	"errors"
	"math"
)

// ErrUnavailable signals that a domain has nothing to report for the
// subject. The assembler treats it (and any other failure) as a soft
// omission, never as a failed assembly.
var ErrUnavailable = errors.New("domain summary unavailable")

// Rate converts a present/total pair into a whole percentage using
// round-half-up, returning 0 when total is zero.
func Rate(present, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(present)/float64(total)*100 + 0.5))
}
