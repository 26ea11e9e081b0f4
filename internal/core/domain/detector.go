package domain

// DetectorResult is the output of a single signal detector run: points to
// add to the aggregate plus the human-readable reasons that earned them.
// Produced fresh per invocation, never mutated after return. A detector
// that found nothing returns zero points and no reasons.
type DetectorResult struct {
	Points  float64
	Reasons []string
}

// Detector is one independent family-connection signal. Detectors are pure
// functions of the two normalized records and the configuration captured at
// construction: no shared state, no I/O, no detector depends on another's
// output, so they may run in any order.
type Detector interface {
	Name() string
	Detect(a, b Officer) DetectorResult
}
