package domain

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// NameDetector compares surnames fuzzily and middle-name sets exactly.
type NameDetector struct {
	cfg *ScoringConfig
}

func NewNameDetector(cfg *ScoringConfig) *NameDetector {
	return &NameDetector{cfg: cfg}
}

func (d *NameDetector) Name() string { return "name" }

func (d *NameDetector) Detect(a, b Officer) DetectorResult {
	var result DetectorResult

	if a.Surname != "" && b.Surname != "" {
		ratio := similarityRatio(a.Surname, b.Surname)
		if ratio >= d.cfg.SurnameSimilarityThreshold {
			points := d.cfg.SurnameMatchPoints
			if d.cfg.SurnameScaledAward {
				points = points * float64(ratio) / 100
			}
			result.Points += points * d.cfg.NameWeight
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("Surname match: %s ~ %s (similarity %d%%)", a.Surname, b.Surname, ratio))
		}
	}

	for _, shared := range sharedMiddleNames(a.MiddleNames, b.MiddleNames) {
		result.Points += d.cfg.MiddleNamePoints * d.cfg.NameWeight
		result.Reasons = append(result.Reasons, fmt.Sprintf("Shared middle name: %s", shared))
	}

	return result
}

// similarityRatio is a levenshtein-based similarity on a 0-100 scale,
// matching the thefuzz-style ratio the thresholds are calibrated against.
func similarityRatio(a, b string) int {
	if a == b {
		return 100
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	ratio := 100 - (100*dist)/longest
	if ratio < 0 {
		ratio = 0
	}
	return ratio
}

// sharedMiddleNames intersects case-insensitively but reports the first
// record's original casing for display. Order follows record A's list.
func sharedMiddleNames(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, name := range b {
		inB[strings.ToUpper(name)] = true
	}
	var shared []string
	seen := make(map[string]bool)
	for _, name := range a {
		key := strings.ToUpper(name)
		if inB[key] && !seen[key] {
			seen[key] = true
			shared = append(shared, name)
		}
	}
	return shared
}
