package domain

import (
	"fmt"
	"time"
)

// Confidence is the coarse tier derived from the total score.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ConnectionScore is the result of scoring one pair of officer records.
type ConnectionScore struct {
	OfficerA   string     `json:"officer_a"`
	OfficerB   string     `json:"officer_b"`
	TotalScore float64    `json:"total_score"`
	Confidence Confidence `json:"confidence"`
	Reasons    []string   `json:"reasons"`
}

// ScoredPair is a ConnectionScore enriched with persistence metadata, the
// shape stored by the repository and pushed to notifiers and exporters.
type ScoredPair struct {
	ID            string     `json:"id"`
	CompanyNumber string     `json:"company_number"`
	OfficerA      string     `json:"officer_a"`
	OfficerB      string     `json:"officer_b"`
	TotalScore    float64    `json:"total_score"`
	Confidence    Confidence `json:"confidence"`
	Reasons       []string   `json:"reasons"`
	ScoredAt      time.Time  `json:"scored_at"`
}

// Scorer runs the five signal detectors against a pair of normalized
// records and aggregates their contributions. It holds no mutable state:
// one Scorer may score any number of pairs concurrently.
type Scorer struct {
	cfg       ScoringConfig
	detectors []Detector
}

// NewScorer validates the configuration once and wires the detectors in
// their fixed invocation order: name, age, appointment, address,
// company-name. Reason concatenation follows this order.
func NewScorer(cfg ScoringConfig) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scorer{cfg: cfg}
	s.detectors = []Detector{
		NewNameDetector(&s.cfg),
		NewAgeDetector(&s.cfg),
		NewAppointmentDetector(&s.cfg),
		NewAddressDetector(&s.cfg),
		NewCompanyNameDetector(&s.cfg),
	}
	return s, nil
}

// Config returns a copy of the configuration the scorer was built with.
func (s *Scorer) Config() ScoringConfig { return s.cfg }

// Score normalizes both records and evaluates every detector. Detectors
// are never skipped based on another detector's output, so identical
// normalized inputs always yield identical output. The only error is a
// record without a usable name.
func (s *Scorer) Score(rawA, rawB RawOfficer) (ConnectionScore, error) {
	a, err := NormalizeOfficer(rawA)
	if err != nil {
		return ConnectionScore{}, fmt.Errorf("record a: %w", err)
	}
	b, err := NormalizeOfficer(rawB)
	if err != nil {
		return ConnectionScore{}, fmt.Errorf("record b: %w", err)
	}
	return s.scoreNormalized(a, b), nil
}

func (s *Scorer) scoreNormalized(a, b Officer) ConnectionScore {
	score := ConnectionScore{
		OfficerA: a.FullName,
		OfficerB: b.FullName,
		Reasons:  []string{},
	}

	for _, detector := range s.detectors {
		result := detector.Detect(a, b)
		score.TotalScore += result.Points
		score.Reasons = append(score.Reasons, result.Reasons...)
	}

	if s.cfg.MaxScore > 0 && score.TotalScore > s.cfg.MaxScore {
		score.TotalScore = s.cfg.MaxScore
	}
	score.Confidence = s.confidence(score.TotalScore)
	return score
}

func (s *Scorer) confidence(total float64) Confidence {
	switch {
	case total < s.cfg.MediumCut:
		return ConfidenceLow
	case total < s.cfg.HighCut:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}

// ScoreGroup scores every unordered pair in a group of records. A record
// without a usable name fails only the pairs it takes part in; the rest of
// the group is still scored. This is orchestration glue around Score: the
// scorer keeps no per-call state, so callers may shard groups across
// goroutines instead if they prefer.
func (s *Scorer) ScoreGroup(records []RawOfficer) []ConnectionScore {
	normalized := make([]*Officer, len(records))
	for i, raw := range records {
		if officer, err := NormalizeOfficer(raw); err == nil {
			normalized[i] = &officer
		}
	}

	var scores []ConnectionScore
	for i := 0; i < len(normalized); i++ {
		for j := i + 1; j < len(normalized); j++ {
			if normalized[i] == nil || normalized[j] == nil {
				continue
			}
			scores = append(scores, s.scoreNormalized(*normalized[i], *normalized[j]))
		}
	}
	return scores
}
