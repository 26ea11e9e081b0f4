package domain

import "fmt"

// AgeDetector classifies the age gap between two officers as sibling-range
// or generational. It needs both DOBs at month precision or better;
// otherwise it contributes nothing. Gaps strictly between the two bounds
// are deliberately ambiguous and score zero.
type AgeDetector struct {
	cfg *ScoringConfig
}

func NewAgeDetector(cfg *ScoringConfig) *AgeDetector {
	return &AgeDetector{cfg: cfg}
}

func (d *AgeDetector) Name() string { return "age" }

func (d *AgeDetector) Detect(a, b Officer) DetectorResult {
	var result DetectorResult

	if !a.DateOfBirth.Known() || !b.DateOfBirth.Known() {
		return result
	}

	gap := YearsBetween(a.DateOfBirth, b.DateOfBirth)

	switch {
	case gap <= d.cfg.SiblingAgeRange:
		result.Points = d.cfg.SiblingPoints * d.cfg.AgeWeight
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("Possible siblings: age gap %.1f years", gap))
	case gap >= d.cfg.GenerationalAgeGap:
		result.Points = d.cfg.GenerationalPoints * d.cfg.AgeWeight
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("Possible parent-child relationship: age gap %.1f years", gap))
	}

	return result
}
